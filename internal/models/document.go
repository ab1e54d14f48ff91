package models

import "strconv"

// Document-store projections. These are read-only derived entities keyed by
// the relational id; clients never write them directly. A sneaker projection
// embeds the resolved brand and category names so listing queries never have
// to join back into the relational store.

// SneakerDocument is the denormalized read-model copy of a Sneaker.
type SneakerDocument struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`
	Variants    []VariantDocument `json:"variants"`
}

// VariantDocument is the projected form of a Variant.
type VariantDocument struct {
	ID    uint   `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// SneakerVariantRow is one (sneaker, variant) pair of the flattened view
// used by the variant listing endpoint.
type SneakerVariantRow struct {
	SneakerID uint    `json:"sneaker_id"`
	VariantID uint    `json:"variant_id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Brand     string  `json:"brand"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Stock     int     `json:"stock"`
}

// BrandDocument is the read-model copy of a Brand.
type BrandDocument struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// CategoryDocument is the read-model copy of a Category.
type CategoryDocument struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Image    string `json:"image"`
	IsBest   bool   `json:"is_best"`
	IsActive bool   `json:"is_active"`
}

// NewSneakerDocument builds the projection for a sneaker whose Brand,
// Category and Variants associations are loaded.
func NewSneakerDocument(s *Sneaker) *SneakerDocument {
	doc := &SneakerDocument{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Price:       s.Price,
		Brand:       s.Brand.Name,
		Category:    s.Category.Name,
	}
	for _, v := range s.Variants {
		doc.Variants = append(doc.Variants, VariantDocument{
			ID:    v.ID,
			Color: v.Color,
			Size:  v.Size,
			Stock: v.Stock,
		})
	}
	return doc
}

// NewBrandDocument builds the projection for a brand.
func NewBrandDocument(b *Brand) *BrandDocument {
	return &BrandDocument{ID: b.ID, Name: b.Name, Slug: b.Slug, Image: b.Image}
}

// NewCategoryDocument builds the projection for a category.
func NewCategoryDocument(c *Category) *CategoryDocument {
	return &CategoryDocument{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		Image:    c.Image,
		IsBest:   c.IsBest,
		IsActive: c.IsActive,
	}
}

// FieldValues returns the queryable values of a document field, supporting
// the dotted variant fields used by search ("variants.color",
// "variants.size"). Multi-valued fields return one entry per variant.
func (d *SneakerDocument) FieldValues(key string) []string {
	switch key {
	case "name":
		return []string{d.Name}
	case "slug":
		return []string{d.Slug}
	case "description":
		return []string{d.Description}
	case "brand":
		return []string{d.Brand}
	case "category":
		return []string{d.Category}
	case "price":
		return []string{strconv.FormatFloat(d.Price, 'f', -1, 64)}
	case "id":
		return []string{strconv.FormatUint(uint64(d.ID), 10)}
	case "variants.color":
		values := make([]string, 0, len(d.Variants))
		for _, v := range d.Variants {
			values = append(values, v.Color)
		}
		return values
	case "variants.size":
		values := make([]string, 0, len(d.Variants))
		for _, v := range d.Variants {
			values = append(values, v.Size)
		}
		return values
	}
	return nil
}

// FieldValues returns the queryable values of a flattened variant row.
func (r *SneakerVariantRow) FieldValues(key string) []string {
	switch key {
	case "name":
		return []string{r.Name}
	case "slug":
		return []string{r.Slug}
	case "brand":
		return []string{r.Brand}
	case "category":
		return []string{r.Category}
	case "price":
		return []string{strconv.FormatFloat(r.Price, 'f', -1, 64)}
	case "variants.color", "color":
		return []string{r.Color}
	case "variants.size", "size":
		return []string{r.Size}
	}
	return nil
}
