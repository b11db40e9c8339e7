package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	"github.com/wearhaus/wearhaus-backend/pkg/enums"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// maxPrice reflects the NUMERIC(8,2) storage column.
var maxPrice = decimal.RequireFromString("999999.99")

const minSuggestionLen = 2

// Service implements catalog management and storefront browsing.
type Service interface {
	CreateProduct(ctx context.Context, dto CreateProductDTO) (*ProductDTO, error)
	BulkCreateProducts(ctx context.Context, dto BulkCreateDTO) ([]ProductDTO, error)
	SetStatus(ctx context.Context, dto SetStatusDTO) (int64, error)
	GetProduct(ctx context.Context, slug string, includeUnpublished bool) (*ProductDTO, error)
	ListByCategory(ctx context.Context, slug string, includeUnpublished bool) ([]ProductCardDTO, error)
	ListNew(ctx context.Context) ([]ProductCardDTO, error)
	ListOnSale(ctx context.Context) ([]ProductCardDTO, error)
	Search(ctx context.Context, query string) ([]ProductCardDTO, error)
	SearchSuggestions(ctx context.Context, query string) ([]SuggestionDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

type service struct {
	db      *db.Client
	repo    *Repository
	catalog config.CatalogConfig
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	DB      *db.Client
	Repo    *Repository
	Catalog config.CatalogConfig
	Logger  *logger.Logger
}

func NewService(params ServiceParams) Service {
	return &service{
		db:      params.DB,
		repo:    params.Repo,
		catalog: params.Catalog,
		logg:    params.Logger,
	}
}

// productInput is one validated create row ready for persistence.
type productInput struct {
	name      string
	price     decimal.Decimal
	discount  int
	category  string
	tags      []string
	imageKeys []string
	variants  map[enums.Size]int
}

// validateRow checks a single create row and returns the parsed input plus
// every field problem found.
func validateRow(dto CreateProductDTO) (productInput, []pkgerrors.FieldError) {
	var fields []pkgerrors.FieldError
	input := productInput{
		name:      strings.TrimSpace(dto.Name),
		discount:  dto.DiscountPercent,
		category:  strings.TrimSpace(dto.CategorySlug),
		tags:      dto.Tags,
		imageKeys: dto.ImageKeys,
		variants:  map[enums.Size]int{},
	}

	if len(input.name) < 2 {
		fields = append(fields, pkgerrors.FieldError{Field: "name", Message: "must be at least 2 characters"})
	}

	price, err := decimal.NewFromString(strings.TrimSpace(dto.Price))
	switch {
	case err != nil:
		fields = append(fields, pkgerrors.FieldError{Field: "price", Message: "must be a decimal number"})
	case price.IsNegative():
		fields = append(fields, pkgerrors.FieldError{Field: "price", Message: "must not be negative"})
	case price.GreaterThan(maxPrice):
		fields = append(fields, pkgerrors.FieldError{Field: "price", Message: "exceeds the maximum price"})
	default:
		input.price = price
	}

	if dto.DiscountPercent < 0 || dto.DiscountPercent > 100 {
		fields = append(fields, pkgerrors.FieldError{Field: "discount_percent", Message: "must be between 0 and 100"})
	}

	for _, v := range dto.Variants {
		size, err := enums.ParseSize(v.Size)
		if err != nil {
			fields = append(fields, pkgerrors.FieldError{Field: "variants", Message: fmt.Sprintf("unknown size %q", v.Size)})
			continue
		}
		if _, dup := input.variants[size]; dup {
			fields = append(fields, pkgerrors.FieldError{Field: "variants", Message: fmt.Sprintf("size %s listed twice", size)})
			continue
		}
		if v.Stock < 0 {
			fields = append(fields, pkgerrors.FieldError{Field: "variants", Message: fmt.Sprintf("size %s has negative stock", size)})
			continue
		}
		input.variants[size] = v.Stock
	}

	return input, fields
}

// CreateProduct validates and stores a single draft listing.
func (s *service) CreateProduct(ctx context.Context, dto CreateProductDTO) (*ProductDTO, error) {
	input, fields := validateRow(dto)
	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields...)
	}

	var created *models.Product
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		product, err := s.createOne(ctx, s.repo.WithTx(tx), input)
		if err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, translateCreateError(err)
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID.String()), "product created")

	return s.GetProduct(ctx, created.Slug, true)
}

// BulkCreateProducts stores every row in one transaction. A problem in any
// row aborts the whole batch; row errors are reported together, prefixed with
// the row index.
func (s *service) BulkCreateProducts(ctx context.Context, dto BulkCreateDTO) ([]ProductDTO, error) {
	if len(dto.Products) == 0 {
		return nil, pkgerrors.Validation(pkgerrors.FieldError{Field: "products", Message: "at least one product is required"})
	}

	inputs := make([]productInput, 0, len(dto.Products))
	var fields []pkgerrors.FieldError
	var rowErrs error
	for i, row := range dto.Products {
		input, rowFields := validateRow(row)
		if len(rowFields) > 0 {
			for _, f := range rowFields {
				f.Field = fmt.Sprintf("products[%d].%s", i, f.Field)
				fields = append(fields, f)
			}
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("row %d: %d invalid fields", i, len(rowFields)))
			continue
		}
		inputs = append(inputs, input)
	}
	if rowErrs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, rowErrs, "bulk create rejected").WithDetails(fields)
	}

	var slugs []string
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, input := range inputs {
			product, err := s.createOne(ctx, txRepo, input)
			if err != nil {
				return err
			}
			slugs = append(slugs, product.Slug)
		}
		return nil
	})
	if err != nil {
		return nil, translateCreateError(err)
	}

	s.logg.Info(s.logg.WithField(ctx, "count", len(slugs)), "bulk product create committed")

	results := make([]ProductDTO, 0, len(slugs))
	for _, slug := range slugs {
		detail, err := s.GetProduct(ctx, slug, true)
		if err != nil {
			return nil, err
		}
		results = append(results, *detail)
	}
	return results, nil
}

// createOne persists a validated row inside the caller's transaction. Every
// product starts as a draft; publishing is a separate staff action.
func (s *service) createOne(ctx context.Context, repo *Repository, input productInput) (*models.Product, error) {
	id := uuid.New()

	slug := Slugify(input.name)
	if slug == "" {
		slug = idFragment(id)
	}
	taken, err := repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		slug = uniqueSlug(slug, id)
	}

	product := &models.Product{
		ID:              id,
		Name:            input.name,
		Slug:            slug,
		SKU:             MakeSKU(id),
		Price:           input.price,
		DiscountPercent: input.discount,
		Status:          enums.ProductStatusDraft,
	}

	if input.category != "" {
		category, err := repo.FindCategoryBySlug(ctx, input.category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Validation(pkgerrors.FieldError{Field: "category_slug", Message: "unknown category"})
			}
			return nil, err
		}
		product.CategoryID = &category.ID
	}

	// one variant per size in the fixed set; unrequested sizes start at zero
	for _, size := range enums.AllSizes {
		product.Variants = append(product.Variants, models.ProductVariant{
			ID:        uuid.New(),
			ProductID: id,
			Size:      size,
			Stock:     input.variants[size],
		})
	}

	for pos, key := range input.imageKeys {
		product.Images = append(product.Images, models.ProductImage{
			ID:        uuid.New(),
			ProductID: id,
			FileKey:   key,
			Position:  pos,
		})
	}

	if err := repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	tags := make([]models.Tag, 0, len(input.tags))
	for _, name := range input.tags {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := repo.FindOrCreateTag(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	if err := repo.AttachTags(ctx, product, tags); err != nil {
		return nil, err
	}

	return product, nil
}

func translateCreateError(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsUniqueViolation(err, "products_slug_key") {
		return pkgerrors.New(pkgerrors.CodeConflict, "product slug is already taken")
	}
	if db.IsUniqueViolation(err, "products_sku_key") {
		return pkgerrors.New(pkgerrors.CodeConflict, "product sku is already taken")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
}

// SetStatus applies a bulk lifecycle action and returns how many products
// actually moved.
func (s *service) SetStatus(ctx context.Context, dto SetStatusDTO) (int64, error) {
	if len(dto.ProductIDs) == 0 {
		return 0, pkgerrors.Validation(pkgerrors.FieldError{Field: "product_ids", Message: "at least one product is required"})
	}
	action, err := enums.ParseStatusAction(dto.Action)
	if err != nil {
		return 0, pkgerrors.Validation(pkgerrors.FieldError{Field: "action", Message: "must be activate or archive"})
	}

	affected, err := s.repo.UpdateStatus(ctx, dto.ProductIDs, action.Target())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product status")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"action": string(action), "affected": affected})
	s.logg.Info(ctx, "product status updated")

	return affected, nil
}

// visibleStatuses returns the statuses a caller may see. Staff browsing the
// admin surface sees drafts and archived listings too.
func visibleStatuses(includeUnpublished bool) []enums.ProductStatus {
	if includeUnpublished {
		return []enums.ProductStatus{enums.ProductStatusDraft, enums.ProductStatusActive, enums.ProductStatusArchived}
	}
	return []enums.ProductStatus{enums.ProductStatusActive}
}

func (s *service) GetProduct(ctx context.Context, slug string, includeUnpublished bool) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product.Status != enums.ProductStatusActive && !includeUnpublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := ToProductDTO(product)
	return &dto, nil
}

func (s *service) ListByCategory(ctx context.Context, slug string, includeUnpublished bool) ([]ProductCardDTO, error) {
	if _, err := s.repo.FindCategoryBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	products, err := s.repo.ListByCategorySlug(ctx, slug, visibleStatuses(includeUnpublished))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing category products")
	}
	return toCardDTOs(products), nil
}

// ListNew returns every active product, newest first. The storefront paginates
// client-side, so no cap is applied here.
func (s *service) ListNew(ctx context.Context) ([]ProductCardDTO, error) {
	products, err := s.repo.ListNewest(ctx, visibleStatuses(false))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing new products")
	}
	return toCardDTOs(products), nil
}

func (s *service) ListOnSale(ctx context.Context) ([]ProductCardDTO, error) {
	products, err := s.repo.ListOnSale(ctx, visibleStatuses(false))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sale products")
	}
	return toCardDTOs(products), nil
}

// Search matches active products by name or tag. A blank query returns an
// empty result rather than the whole catalog.
func (s *service) Search(ctx context.Context, query string) ([]ProductCardDTO, error) {
	if strings.TrimSpace(query) == "" {
		return []ProductCardDTO{}, nil
	}
	products, err := s.repo.Search(ctx, query, visibleStatuses(false), 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching products")
	}
	return toCardDTOs(products), nil
}

// SearchSuggestions powers the type-ahead dropdown. Queries shorter than two
// characters return nothing, and the result set is capped by configuration.
func (s *service) SearchSuggestions(ctx context.Context, query string) ([]SuggestionDTO, error) {
	if len(strings.TrimSpace(query)) < minSuggestionLen {
		return []SuggestionDTO{}, nil
	}

	limit := s.catalog.SuggestionLimit
	if limit <= 0 {
		limit = 6
	}
	products, err := s.repo.Search(ctx, query, visibleStatuses(false), limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "searching suggestions")
	}

	suggestions := make([]SuggestionDTO, 0, len(products))
	for i := range products {
		p := &products[i]
		suggestions = append(suggestions, SuggestionDTO{
			ID:       p.ID,
			Name:     p.Name,
			URL:      fmt.Sprintf("%s/%s", strings.TrimRight(s.catalog.ProductURLBase, "/"), p.Slug),
			ImageKey: p.FirstImageKey(),
			Price:    p.FinalPrice(),
		})
	}
	return suggestions, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return dtos, nil
}
