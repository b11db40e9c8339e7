package enums

import "fmt"

// Size represents the canonical garment sizes carried by every product.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	Size2XL Size = "2XL"
)

// AllSizes lists every size in display order. Product creation builds one
// variant per entry, including sizes that start with zero stock.
var AllSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, Size2XL}

// String implements fmt.Stringer.
func (s Size) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Size.
func (s Size) IsValid() bool {
	for _, candidate := range AllSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSize converts raw input into a Size. "XXL" is accepted as a legacy
// alias for 2XL.
func ParseSize(value string) (Size, error) {
	if value == "XXL" {
		return Size2XL, nil
	}
	for _, candidate := range AllSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid size %q", value)
}
