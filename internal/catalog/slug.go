package catalog

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// uniqueSlug appends a fragment of the product's own identifier when the base
// slug is already taken, so concurrent creates with the same name cannot race
// each other for the slug.
func uniqueSlug(base string, id uuid.UUID) string {
	return base + "-" + idFragment(id)
}

// MakeSKU derives the stock keeping unit from the product's identifier. The
// identifier is client-generated, so the SKU is known before the insert and
// two concurrent creates can never compute the same value.
func MakeSKU(id uuid.UUID) string {
	return "W-" + strings.ToUpper(idFragment(id))
}

func idFragment(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
