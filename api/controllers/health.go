package controllers

import (
	"context"
	"net/http"

	"github.com/wearhaus/wearhaus-backend/api/responses"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthController answers liveness and readiness probes.
type HealthController struct {
	db    pinger
	redis pinger
	logg  *logger.Logger
}

// HealthControllerParams bundles the dependencies for NewHealthController.
type HealthControllerParams struct {
	DB     pinger
	Redis  pinger
	Logger *logger.Logger
}

func NewHealthController(params HealthControllerParams) *HealthController {
	return &HealthController{db: params.DB, redis: params.Redis, logg: params.Logger}
}

// Live reports process liveness.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the backing stores answer.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := c.db.Ping(ctx); err != nil {
		responses.WriteError(ctx, w, c.logg,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
		return
	}
	if err := c.redis.Ping(ctx); err != nil {
		responses.WriteError(ctx, w, c.logg,
			pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
		return
	}

	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
