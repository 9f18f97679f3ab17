package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe slug from an entity name.
// Example: "Modern Art" -> "modern-art"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "untitled"
	}
	return base
}

// UniqueSlug de-duplicates the generated slug against the model's table by
// appending an incrementing counter: "modern-art", "modern-art-2", ...
// The counter is returned too; artwork serials reuse it as their sequence part.
//
// IMPORTANT: pass db in, do NOT import arts-market/database here (avoids import cycle).
func UniqueSlug(db *gorm.DB, model any, name string) (string, int, error) {
	base := MakeSlug(name)
	slug := base
	counter := 1

	for {
		var count int64
		if err := db.Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", 0, err
		}
		if count == 0 {
			return slug, counter, nil
		}
		counter++
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
