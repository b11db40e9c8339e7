package catalog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	"github.com/wearhaus/wearhaus-backend/pkg/enums"
)

// VariantInput sets the opening stock for one size. Sizes left out of the
// request still get a variant, starting at zero stock.
type VariantInput struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// CreateProductDTO carries a new catalog listing. Price travels as a string
// so the decimal survives JSON without float rounding.
type CreateProductDTO struct {
	Name            string         `json:"name" validate:"required,min=2"`
	Price           string         `json:"price" validate:"required"`
	DiscountPercent int            `json:"discount_percent" validate:"gte=0,lte=100"`
	CategorySlug    string         `json:"category_slug"`
	Tags            []string       `json:"tags"`
	ImageKeys       []string       `json:"image_keys"`
	Variants        []VariantInput `json:"variants" validate:"dive"`
}

// BulkCreateDTO wraps multiple product rows created in one transaction.
type BulkCreateDTO struct {
	Products []CreateProductDTO `json:"products" validate:"required,min=1,dive"`
}

// SetStatusDTO is a staff bulk lifecycle action.
type SetStatusDTO struct {
	ProductIDs []uuid.UUID `json:"product_ids" validate:"required,min=1"`
	Action     string      `json:"action" validate:"required"`
}

// VariantDTO is the public shape of one size option.
type VariantDTO struct {
	ID    uuid.UUID `json:"id"`
	Size  string    `json:"size"`
	Stock int       `json:"stock"`
}

// ProductDTO is the full detail view of a listing.
type ProductDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	SKU             string          `json:"sku"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discount_percent"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Status          string          `json:"status"`
	Category        string          `json:"category,omitempty"`
	Tags            []string        `json:"tags"`
	ImageKeys       []string        `json:"image_keys"`
	Variants        []VariantDTO    `json:"variants"`
	SoldOut         bool            `json:"sold_out"`
}

// ProductCardDTO is the compact listing row used by category and search pages.
type ProductCardDTO struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	Price      decimal.Decimal `json:"price"`
	FinalPrice decimal.Decimal `json:"final_price"`
	OnSale     bool            `json:"on_sale"`
	ImageKey   string          `json:"image_key,omitempty"`
	SoldOut    bool            `json:"sold_out"`
}

// SuggestionDTO is one row of the search-as-you-type dropdown.
type SuggestionDTO struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	ImageKey string          `json:"image_key,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// CategoryDTO is the public shape of a storefront category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ToProductDTO maps a fully preloaded product onto its detail shape.
func ToProductDTO(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		SKU:             p.SKU,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		FinalPrice:      p.FinalPrice(),
		Status:          p.Status.String(),
		Tags:            make([]string, 0, len(p.Tags)),
		ImageKeys:       make([]string, 0, len(p.Images)),
		Variants:        make([]VariantDTO, 0, len(p.Variants)),
		SoldOut:         p.IsSoldOut(),
	}
	if p.Category != nil {
		dto.Category = p.Category.Name
	}
	for _, t := range p.Tags {
		dto.Tags = append(dto.Tags, t.Name)
	}
	for _, img := range p.Images {
		dto.ImageKeys = append(dto.ImageKeys, img.FileKey)
	}
	for _, v := range sortedVariants(p.Variants) {
		dto.Variants = append(dto.Variants, VariantDTO{ID: v.ID, Size: v.Size.String(), Stock: v.Stock})
	}
	return dto
}

// ToProductCardDTO maps a product with variants and images preloaded onto the
// listing row shape.
func ToProductCardDTO(p *models.Product) ProductCardDTO {
	return ProductCardDTO{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		Price:      p.Price,
		FinalPrice: p.FinalPrice(),
		OnSale:     p.DiscountPercent > 0,
		ImageKey:   p.FirstImageKey(),
		SoldOut:    p.IsSoldOut(),
	}
}

func toCardDTOs(products []models.Product) []ProductCardDTO {
	cards := make([]ProductCardDTO, 0, len(products))
	for i := range products {
		cards = append(cards, ToProductCardDTO(&products[i]))
	}
	return cards
}

// sortedVariants returns variants in size display order.
func sortedVariants(variants []models.ProductVariant) []models.ProductVariant {
	rank := make(map[enums.Size]int, len(enums.AllSizes))
	for i, s := range enums.AllSizes {
		rank[s] = i
	}
	sorted := make([]models.ProductVariant, len(variants))
	copy(sorted, variants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank[sorted[i].Size] < rank[sorted[j].Size]
	})
	return sorted
}
