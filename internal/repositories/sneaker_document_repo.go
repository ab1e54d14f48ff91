package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sneakstore/internal/models"
)

// Fields covered by the free-text search. The flattened variant view drops
// the description, matching the storefront search boxes.
var (
	sneakerSearchFields = []string{"name", "category", "brand", "description", "variants.color", "variants.size"}
	variantSearchFields = []string{"name", "category", "brand", "variants.color", "variants.size"}
)

// searchKey is the pseudo-field holding the free-text clause. Explicit
// filters are merged on top of it, so a filter under the same key replaces
// the search clause rather than combining with it.
const searchKey = "$or"

// PaginatedSneakers is a page of sneaker documents plus the total count of
// matches across all pages.
type PaginatedSneakers struct {
	Total int                      `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
	Items []models.SneakerDocument `json:"items"`
}

// PaginatedVariants is a page of flattened (sneaker, variant) rows.
type PaginatedVariants struct {
	Total int                        `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
	Items []models.SneakerVariantRow `json:"items"`
}

// SneakerDocumentRepository runs listing queries against the sneaker
// collection of the document store. The store holds opaque JSON strings, so
// filtering and sorting are evaluated here after listing the collection;
// the collection is bounded by catalog size.
type SneakerDocumentRepository struct {
	store DocumentStore
}

// NewSneakerDocumentRepository creates a new SneakerDocumentRepository.
func NewSneakerDocumentRepository(store DocumentStore) *SneakerDocumentRepository {
	return &SneakerDocumentRepository{store: store}
}

func (r *SneakerDocumentRepository) list(ctx context.Context) ([]models.SneakerDocument, error) {
	raw, err := r.store.List(ctx, CollectionSneakers)
	if err != nil {
		return nil, fmt.Errorf("failed to list sneaker documents: %w", err)
	}
	docs := make([]models.SneakerDocument, 0, len(raw))
	for _, data := range raw {
		var doc models.SneakerDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sneaker document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// documentFields lets the same query evaluation serve full documents and
// flattened variant rows.
type documentFields interface {
	FieldValues(key string) []string
}

// buildConditions merges the free-text clause with the explicit filters.
// The search clause goes in first under its own key, then the filters are
// copied over it, overwriting on key collision.
func buildConditions(q string, filters map[string]string) map[string]string {
	conditions := make(map[string]string, len(filters)+1)
	if q != "" {
		conditions[searchKey] = q
	}
	for key, value := range filters {
		conditions[key] = value
	}
	return conditions
}

// matches evaluates the merged conditions against one document: the search
// clause is an OR of case-insensitive substring matches over searchFields,
// every other key is an equality check ANDed on top.
func matches(doc documentFields, conditions map[string]string, searchFields []string) bool {
	for key, value := range conditions {
		if key == searchKey {
			if !anyFieldContains(doc, searchFields, value) {
				return false
			}
			continue
		}
		if !fieldEquals(doc, key, value) {
			return false
		}
	}
	return true
}

func anyFieldContains(doc documentFields, fields []string, q string) bool {
	needle := strings.ToLower(q)
	for _, field := range fields {
		for _, value := range doc.FieldValues(field) {
			if strings.Contains(strings.ToLower(value), needle) {
				return true
			}
		}
	}
	return false
}

func fieldEquals(doc documentFields, key, value string) bool {
	for _, v := range doc.FieldValues(key) {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// less orders two documents by a field. Numeric fields compare numerically,
// everything else lexicographically.
func less(a, b documentFields, field string) bool {
	av, bv := firstValue(a, field), firstValue(b, field)
	af, aerr := strconv.ParseFloat(av, 64)
	bf, berr := strconv.ParseFloat(bv, 64)
	if aerr == nil && berr == nil {
		return af < bf
	}
	return strings.ToLower(av) < strings.ToLower(bv)
}

func firstValue(doc documentFields, field string) string {
	values := doc.FieldValues(field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func pageBounds(total, page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	// Both values come straight from query parameters; a negative limit
	// must not produce an inverted slice range.
	if limit < 0 {
		limit = 0
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

// GetPaginated returns one page of sneaker documents matching the free-text
// query and the explicit filters, plus the total match count for pagination
// math on the client.
func (r *SneakerDocumentRepository) GetPaginated(ctx context.Context, q string, page, limit int, sortField, sortOrder string, filters map[string]string) (*PaginatedSneakers, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	conditions := buildConditions(q, filters)
	matched := make([]models.SneakerDocument, 0, len(docs))
	for _, doc := range docs {
		if matches(&doc, conditions, sneakerSearchFields) {
			matched = append(matched, doc)
		}
	}

	sortDocuments(matched, sortField, sortOrder)

	start, end := pageBounds(len(matched), page, limit)
	return &PaginatedSneakers{
		Total: len(matched),
		Page:  page,
		Limit: limit,
		Items: matched[start:end],
	}, nil
}

// GetVariantsPaginated is GetPaginated over the flattened view where each
// (sneaker, variant) pair is its own row.
func (r *SneakerDocumentRepository) GetVariantsPaginated(ctx context.Context, q string, page, limit int, sortField, sortOrder string, filters map[string]string) (*PaginatedVariants, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.SneakerVariantRow, 0, len(docs))
	for _, doc := range docs {
		for _, v := range doc.Variants {
			rows = append(rows, models.SneakerVariantRow{
				SneakerID: doc.ID,
				VariantID: v.ID,
				Name:      doc.Name,
				Slug:      doc.Slug,
				Brand:     doc.Brand,
				Category:  doc.Category,
				Price:     doc.Price,
				Color:     v.Color,
				Size:      v.Size,
				Stock:     v.Stock,
			})
		}
	}

	conditions := buildConditions(q, filters)
	matched := make([]models.SneakerVariantRow, 0, len(rows))
	for _, row := range rows {
		if matches(&row, conditions, variantSearchFields) {
			matched = append(matched, row)
		}
	}

	sortVariantRows(matched, sortField, sortOrder)

	start, end := pageBounds(len(matched), page, limit)
	return &PaginatedVariants{
		Total: len(matched),
		Page:  page,
		Limit: limit,
		Items: matched[start:end],
	}, nil
}

// FindOne returns the first document matching the filters, or nil when no
// document matches.
func (r *SneakerDocumentRepository) FindOne(ctx context.Context, filters map[string]string) (*models.SneakerDocument, error) {
	docs, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if matches(&docs[i], filters, sneakerSearchFields) {
			return &docs[i], nil
		}
	}
	return nil, nil
}

// FindOneBySlug returns the document with the given slug, or nil.
func (r *SneakerDocumentRepository) FindOneBySlug(ctx context.Context, slug string) (*models.SneakerDocument, error) {
	return r.FindOne(ctx, map[string]string{"slug": slug})
}

func sortDocuments(docs []models.SneakerDocument, field, order string) {
	if field == "" {
		field = "name"
	}
	desc := order == "desc"
	sort.SliceStable(docs, func(i, j int) bool {
		if desc {
			return less(&docs[j], &docs[i], field)
		}
		return less(&docs[i], &docs[j], field)
	})
}

func sortVariantRows(rows []models.SneakerVariantRow, field, order string) {
	if field == "" {
		field = "name"
	}
	desc := order == "desc"
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(&rows[j], &rows[i], field)
		}
		return less(&rows[i], &rows[j], field)
	})
}
