package enums

import "fmt"

// ProductStatus captures the catalog lifecycle of a product. Transitions are
// staff-driven bulk actions only; nothing moves a product automatically.
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

var validProductStatuses = []ProductStatus{
	ProductStatusDraft,
	ProductStatusActive,
	ProductStatusArchived,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// StatusAction is a staff bulk action against draft-review selections.
type StatusAction string

const (
	StatusActionActivate StatusAction = "activate"
	StatusActionArchive  StatusAction = "archive"
)

// Target returns the product status the action transitions to.
func (a StatusAction) Target() ProductStatus {
	if a == StatusActionArchive {
		return ProductStatusArchived
	}
	return ProductStatusActive
}

// ParseStatusAction converts raw input into a StatusAction.
func ParseStatusAction(value string) (StatusAction, error) {
	switch StatusAction(value) {
	case StatusActionActivate:
		return StatusActionActivate, nil
	case StatusActionArchive:
		return StatusActionArchive, nil
	}
	return "", fmt.Errorf("invalid status action %q", value)
}
