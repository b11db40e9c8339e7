package catalog

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	"github.com/wearhaus/wearhaus-backend/pkg/enums"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

const catalogDDL = `
CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  CONSTRAINT categories_slug_key UNIQUE (slug)
);
CREATE TABLE tags (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  CONSTRAINT tags_name_key UNIQUE (name)
);
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  sku TEXT NOT NULL,
  price NUMERIC NOT NULL,
  discount_percent INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'draft',
  published_at DATETIME,
  category_id TEXT REFERENCES categories (id),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  CONSTRAINT products_slug_key UNIQUE (slug),
  CONSTRAINT products_sku_key UNIQUE (sku)
);
CREATE TABLE product_tags (
  product_id TEXT NOT NULL REFERENCES products (id),
  tag_id TEXT NOT NULL REFERENCES tags (id),
  PRIMARY KEY (product_id, tag_id)
);
CREATE TABLE product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products (id),
  size TEXT NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  CONSTRAINT product_variants_product_id_size_key UNIQUE (product_id, size)
);
CREATE TABLE product_images (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products (id),
  file_key TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0
);`

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(catalogDDL).Error)

	svc := NewService(ServiceParams{
		DB:      db.NewWithConn(conn),
		Repo:    NewRepository(conn),
		Catalog: config.CatalogConfig{SuggestionLimit: 3, ProductURLBase: "/product"},
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	return svc, conn
}

func seedCategory(t *testing.T, conn *gorm.DB, name, slug string) {
	t.Helper()
	require.NoError(t, conn.Create(&models.Category{ID: uuid.New(), Name: name, Slug: slug}).Error)
}

func shirtDTO() CreateProductDTO {
	return CreateProductDTO{
		Name:            "Linen Shirt",
		Price:           "79.90",
		DiscountPercent: 0,
		Tags:            []string{"Summer", "shirts"},
		ImageKeys:       []string{"img/front.jpg", "img/back.jpg"},
		Variants: []VariantInput{
			{Size: "M", Stock: 4},
			{Size: "S", Stock: 0},
		},
	}
}

func activate(t *testing.T, svc Service, ids ...uuid.UUID) {
	t.Helper()
	_, err := svc.SetStatus(context.Background(), SetStatusDTO{ProductIDs: ids, Action: "activate"})
	require.NoError(t, err)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with derived slug and sku", func(t *testing.T) {
		svc, _ := newTestService(t)

		product, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		assert.Equal(t, "linen-shirt", product.Slug)
		assert.Equal(t, "draft", product.Status)
		assert.Regexp(t, `^W-[0-9A-F]{8}$`, product.SKU)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("79.90")))
		assert.True(t, product.FinalPrice.Equal(product.Price))
		assert.Equal(t, []string{"img/front.jpg", "img/back.jpg"}, product.ImageKeys)
		assert.ElementsMatch(t, []string{"summer", "shirts"}, product.Tags)

		require.Len(t, product.Variants, 6)
		assert.Equal(t, "XS", product.Variants[0].Size, "variants come back in size order")
		assert.Equal(t, "S", product.Variants[1].Size)
		assert.Equal(t, 0, product.Variants[1].Stock, "zero-stock sizes are kept")
		assert.Equal(t, 4, product.Variants[2].Stock)
	})

	t.Run("every size gets a variant, unlisted ones at zero stock", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.Variants = []VariantInput{{Size: "M", Stock: 4}}

		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)

		require.Len(t, product.Variants, 6)
		stocks := map[string]int{}
		for _, v := range product.Variants {
			stocks[v.Size] = v.Stock
		}
		assert.Equal(t, map[string]int{"XS": 0, "S": 0, "M": 4, "L": 0, "XL": 0, "2XL": 0}, stocks)
	})

	t.Run("variants may be omitted entirely", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.Variants = nil

		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)
		require.Len(t, product.Variants, 6)
		assert.True(t, product.SoldOut)
	})

	t.Run("same name gets a distinct slug", func(t *testing.T) {
		svc, _ := newTestService(t)

		first, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)
		second, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		assert.Equal(t, "linen-shirt", first.Slug)
		assert.NotEqual(t, first.Slug, second.Slug)
		assert.Contains(t, second.Slug, "linen-shirt-")
	})

	t.Run("discount shapes the final price", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.Price = "100.00"
		dto.DiscountPercent = 25

		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)
		assert.True(t, product.FinalPrice.Equal(decimal.RequireFromString("75")))
	})

	t.Run("assigns the category by slug", func(t *testing.T) {
		svc, conn := newTestService(t)
		seedCategory(t, conn, "Shirts", "shirts")

		dto := shirtDTO()
		dto.CategorySlug = "shirts"

		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)
		assert.Equal(t, "Shirts", product.Category)
	})

	t.Run("unknown category is a validation error", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.CategorySlug = "does-not-exist"

		_, err := svc.CreateProduct(ctx, dto)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("collects all field problems", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateProduct(ctx, CreateProductDTO{
			Name:            "x",
			Price:           "not-a-price",
			DiscountPercent: 150,
			Variants:        []VariantInput{{Size: "XS", Stock: 1}, {Size: "XS", Stock: 2}},
		})
		require.Error(t, err)

		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		fields, ok := typed.Details().([]pkgerrors.FieldError)
		require.True(t, ok)
		assert.Len(t, fields, 4)
	})

	t.Run("accepts the legacy XXL alias", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.Variants = []VariantInput{{Size: "XXL", Stock: 2}}

		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)
		require.Len(t, product.Variants, 6)
		last := product.Variants[len(product.Variants)-1]
		assert.Equal(t, "2XL", last.Size)
		assert.Equal(t, 2, last.Stock)
	})
}

func TestBulkCreateProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("creates every row in one transaction", func(t *testing.T) {
		svc, _ := newTestService(t)

		second := shirtDTO()
		second.Name = "Wool Sweater"

		results, err := svc.BulkCreateProducts(ctx, BulkCreateDTO{
			Products: []CreateProductDTO{shirtDTO(), second},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "linen-shirt", results[0].Slug)
		assert.Equal(t, "wool-sweater", results[1].Slug)
		assert.Len(t, results[0].Variants, 6, "bulk rows get the full size run too")
	})

	t.Run("one bad row aborts the whole batch", func(t *testing.T) {
		svc, conn := newTestService(t)

		bad := shirtDTO()
		bad.Price = "free"

		_, err := svc.BulkCreateProducts(ctx, BulkCreateDTO{
			Products: []CreateProductDTO{shirtDTO(), bad},
		})
		require.Error(t, err)

		typed := pkgerrors.As(err)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		fields, ok := typed.Details().([]pkgerrors.FieldError)
		require.True(t, ok)
		require.Len(t, fields, 1)
		assert.Equal(t, "products[1].price", fields[0].Field)

		var count int64
		require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
		assert.Zero(t, count, "nothing may be persisted when a row fails")
	})

	t.Run("shared tags are reused across rows", func(t *testing.T) {
		svc, conn := newTestService(t)

		second := shirtDTO()
		second.Name = "Wool Sweater"
		second.Tags = []string{"SUMMER"}

		_, err := svc.BulkCreateProducts(ctx, BulkCreateDTO{
			Products: []CreateProductDTO{shirtDTO(), second},
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, conn.Model(&models.Tag{}).Where("name = ?", "summer").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("activate publishes and stamps published_at once", func(t *testing.T) {
		svc, conn := newTestService(t)

		product, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		affected, err := svc.SetStatus(ctx, SetStatusDTO{ProductIDs: []uuid.UUID{product.ID}, Action: "activate"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		var row models.Product
		require.NoError(t, conn.First(&row, "id = ?", product.ID).Error)
		require.NotNil(t, row.PublishedAt)
		firstPublish := *row.PublishedAt

		// archive, then activate again: the original publish time survives
		_, err = svc.SetStatus(ctx, SetStatusDTO{ProductIDs: []uuid.UUID{product.ID}, Action: "archive"})
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, SetStatusDTO{ProductIDs: []uuid.UUID{product.ID}, Action: "activate"})
		require.NoError(t, err)

		require.NoError(t, conn.First(&row, "id = ?", product.ID).Error)
		require.NotNil(t, row.PublishedAt)
		assert.True(t, row.PublishedAt.Equal(firstPublish))
	})

	t.Run("already active rows are not counted", func(t *testing.T) {
		svc, _ := newTestService(t)

		product, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)
		activate(t, svc, product.ID)

		affected, err := svc.SetStatus(ctx, SetStatusDTO{ProductIDs: []uuid.UUID{product.ID}, Action: "activate"})
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.SetStatus(ctx, SetStatusDTO{ProductIDs: []uuid.UUID{uuid.New()}, Action: "delete"})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})
}

func TestVariantSizeUniqueness(t *testing.T) {
	svc, conn := newTestService(t)

	product, err := svc.CreateProduct(context.Background(), shirtDTO())
	require.NoError(t, err)

	err = conn.Create(&models.ProductVariant{
		ID:        uuid.New(),
		ProductID: product.ID,
		Size:      enums.SizeM,
		Stock:     1,
	}).Error
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "product_variants_product_id_size_key"))
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("drafts are hidden from shoppers", func(t *testing.T) {
		svc, _ := newTestService(t)

		product, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		_, err = svc.GetProduct(ctx, product.Slug, false)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

		detail, err := svc.GetProduct(ctx, product.Slug, true)
		require.NoError(t, err)
		assert.Equal(t, product.ID, detail.ID)
	})

	t.Run("sold out is derived from variant stock", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.Variants = []VariantInput{{Size: "M", Stock: 0}, {Size: "L", Stock: 0}}

		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)
		assert.True(t, product.SoldOut)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc Service) {
		t.Helper()
		first, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		second := shirtDTO()
		second.Name = "Wool Sweater"
		second.Tags = []string{"winter"}
		sweater, err := svc.CreateProduct(ctx, second)
		require.NoError(t, err)

		activate(t, svc, first.ID, sweater.ID)
	}

	t.Run("matches names case-insensitively", func(t *testing.T) {
		svc, _ := newTestService(t)
		seed(t, svc)

		results, err := svc.Search(ctx, "LINEN")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "linen-shirt", results[0].Slug)
	})

	t.Run("matches tag names", func(t *testing.T) {
		svc, _ := newTestService(t)
		seed(t, svc)

		results, err := svc.Search(ctx, "winter")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "wool-sweater", results[0].Slug)
	})

	t.Run("blank query returns nothing", func(t *testing.T) {
		svc, _ := newTestService(t)
		seed(t, svc)

		results, err := svc.Search(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("like wildcards are matched literally", func(t *testing.T) {
		svc, _ := newTestService(t)
		seed(t, svc)

		results, err := svc.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, results, "a bare wildcard must not dump the catalog")

		results, err = svc.Search(ctx, "l_nen")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("drafts never match", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		results, err := svc.Search(ctx, "linen")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("short queries return nothing", func(t *testing.T) {
		svc, _ := newTestService(t)

		results, err := svc.SearchSuggestions(ctx, "l")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("caps results and builds product urls", func(t *testing.T) {
		svc, _ := newTestService(t)

		var ids []uuid.UUID
		for _, name := range []string{"Shirt One", "Shirt Two", "Shirt Three", "Shirt Four"} {
			dto := shirtDTO()
			dto.Name = name
			product, err := svc.CreateProduct(ctx, dto)
			require.NoError(t, err)
			ids = append(ids, product.ID)
		}
		activate(t, svc, ids...)

		results, err := svc.SearchSuggestions(ctx, "shirt")
		require.NoError(t, err)
		require.Len(t, results, 3, "limit comes from configuration")
		assert.Contains(t, results[0].URL, "/product/shirt-")
		assert.Equal(t, "img/front.jpg", results[0].ImageKey)
	})

	t.Run("uses the discounted price", func(t *testing.T) {
		svc, _ := newTestService(t)

		dto := shirtDTO()
		dto.Price = "100.00"
		dto.DiscountPercent = 10
		product, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)
		activate(t, svc, product.ID)

		results, err := svc.SearchSuggestions(ctx, "linen")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, results[0].Price.Equal(decimal.RequireFromString("90")))
	})
}

func TestListings(t *testing.T) {
	ctx := context.Background()

	t.Run("list by category excludes drafts for shoppers", func(t *testing.T) {
		svc, conn := newTestService(t)
		seedCategory(t, conn, "Shirts", "shirts")

		dto := shirtDTO()
		dto.CategorySlug = "shirts"
		draft, err := svc.CreateProduct(ctx, dto)
		require.NoError(t, err)

		second := shirtDTO()
		second.Name = "Oxford Shirt"
		second.CategorySlug = "shirts"
		published, err := svc.CreateProduct(ctx, second)
		require.NoError(t, err)
		activate(t, svc, published.ID)

		public, err := svc.ListByCategory(ctx, "shirts", false)
		require.NoError(t, err)
		require.Len(t, public, 1)
		assert.Equal(t, published.ID, public[0].ID)

		staff, err := svc.ListByCategory(ctx, "shirts", true)
		require.NoError(t, err)
		assert.Len(t, staff, 2)
		_ = draft
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.ListByCategory(ctx, "nope", false)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	})

	t.Run("on sale lists only discounted products", func(t *testing.T) {
		svc, _ := newTestService(t)

		plain, err := svc.CreateProduct(ctx, shirtDTO())
		require.NoError(t, err)

		discounted := shirtDTO()
		discounted.Name = "Sale Shirt"
		discounted.DiscountPercent = 30
		sale, err := svc.CreateProduct(ctx, discounted)
		require.NoError(t, err)
		activate(t, svc, plain.ID, sale.ID)

		results, err := svc.ListOnSale(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, sale.ID, results[0].ID)
		assert.True(t, results[0].OnSale)
	})

	t.Run("list new returns every active product", func(t *testing.T) {
		svc, _ := newTestService(t)

		var ids []uuid.UUID
		for i := 0; i < 13; i++ {
			dto := shirtDTO()
			dto.Name = fmt.Sprintf("Tee %02d", i)
			product, err := svc.CreateProduct(ctx, dto)
			require.NoError(t, err)
			ids = append(ids, product.ID)
		}
		activate(t, svc, ids...)

		results, err := svc.ListNew(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 13)
	})

	t.Run("categories come back in name order", func(t *testing.T) {
		svc, conn := newTestService(t)
		seedCategory(t, conn, "Trousers", "trousers")
		seedCategory(t, conn, "Shirts", "shirts")

		categories, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Shirts", categories[0].Name)
	})
}
