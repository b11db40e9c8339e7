package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/wearhaus/wearhaus-backend/pkg/redis"
)

type memoryStore struct {
	data map[string]string
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return "", redisclient.ErrNotFound
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type passthroughKeyer struct{}

func (passthroughKeyer) SessionKey(id string) string { return "wh:session:" + id }

func newTestManager() (*Manager, *memoryStore) {
	store := &memoryStore{}
	return &Manager{store: store, keyer: passthroughKeyer{}, ttl: time.Hour}, store
}

func TestSessionLifecycle(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	sid := NewSessionID()

	ok, err := m.HasSession(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Create(ctx, sid, uuid.New()))

	ok, err = m.HasSession(ctx, sid)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Revoke(ctx, sid))

	ok, err = m.HasSession(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateRequiresSessionID(t *testing.T) {
	m, _ := newTestManager()
	assert.Error(t, m.Create(context.Background(), " ", uuid.New()))
}

func TestHasSessionEmptyIDIsFalse(t *testing.T) {
	m, _ := newTestManager()
	ok, err := m.HasSession(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}
