package slugify

import "github.com/gosimple/slug"

// Make derives the URL-safe, lowercase identifier stored alongside every
// brand, category and sneaker name. The same name always yields the same
// slug, so the unique index on the slug column mirrors the one on the name.
func Make(name string) string {
	return slug.Make(name)
}
