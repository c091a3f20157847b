package lineitem

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/storefront/internal/lineitem/domain"
)

// HumanizeCode turns "line-item/car-cleaning" into "Car cleaning".
func HumanizeCode(code domain.Code) string {
	name := strings.ReplaceAll(code.Name(), "-", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// RowID returns a stable, URL-safe identifier for a line item code.
func RowID(code domain.Code) string {
	return slug.Make(code.Name())
}
