package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	"github.com/wearhaus/wearhaus-backend/pkg/enums"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// CreateProduct inserts the product row together with its variants and images.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// SlugExists reports whether any product already uses the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// FindOrCreateTag returns the tag with the given name, creating it if needed.
// Tag names are stored lowercased.
func (r *Repository) FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where("name = ?", normalized).
		Attrs(models.Tag{ID: uuid.New()}).
		FirstOrCreate(&tag, models.Tag{Name: normalized}).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// AttachTags links the tags to the product through the join table.
func (r *Repository) AttachTags(ctx context.Context, product *models.Product, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(product).Association("Tags").Append(tags)
}

// FindBySlug loads a fully preloaded product.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.preloaded(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStatus moves the listed products to the target status and returns the
// number of affected rows. Activation stamps published_at on first publish
// only.
func (r *Repository) UpdateStatus(ctx context.Context, ids []uuid.UUID, target enums.ProductStatus) (int64, error) {
	updates := map[string]any{"status": target}
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids)
	if target == enums.ProductStatusActive {
		query = query.Where("status <> ?", enums.ProductStatusActive)
		updates["published_at"] = gorm.Expr("COALESCE(published_at, CURRENT_TIMESTAMP)")
	} else {
		query = query.Where("status <> ?", target)
	}
	result := query.Updates(updates)
	return result.RowsAffected, result.Error
}

// ListByCategorySlug returns products in a category, newest first.
func (r *Repository) ListByCategorySlug(ctx context.Context, slug string, statuses []enums.ProductStatus) ([]models.Product, error) {
	var products []models.Product
	err := r.preloaded(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.slug = ?", slug).
		Where("products.status IN ?", statuses).
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

// ListNewest returns products in the given statuses, newest first.
func (r *Repository) ListNewest(ctx context.Context, statuses []enums.ProductStatus) ([]models.Product, error) {
	var products []models.Product
	err := r.preloaded(ctx).
		Where("products.status IN ?", statuses).
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

// ListOnSale returns discounted products in the given statuses, newest first.
func (r *Repository) ListOnSale(ctx context.Context, statuses []enums.ProductStatus) ([]models.Product, error) {
	var products []models.Product
	err := r.preloaded(ctx).
		Where("products.status IN ?", statuses).
		Where("products.discount_percent > 0").
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

// Search matches the query against product names and tag names,
// case-insensitively. The LOWER/LIKE combination behaves the same on postgres
// and sqlite.
func (r *Repository) Search(ctx context.Context, query string, statuses []enums.ProductStatus, limit int) ([]models.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	var products []models.Product
	q := r.preloaded(ctx).
		Where("products.status IN ?", statuses).
		Where(`LOWER(products.name) LIKE ? ESCAPE '\' OR EXISTS (
			SELECT 1 FROM product_tags
			JOIN tags ON tags.id = product_tags.tag_id
			WHERE product_tags.product_id = products.id AND LOWER(tags.name) LIKE ? ESCAPE '\'
		)`, pattern, pattern).
		Order("products.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&products).Error
	return products, err
}

// escapeLike neutralizes LIKE wildcards so the query is matched as a literal
// substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// ListCategories returns every category in name order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindCategoryBySlug loads a single category.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
