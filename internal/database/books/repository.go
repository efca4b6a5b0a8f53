// Package books provides database operations for the library catalogue: the
// sanitize/create/read/update/delete cycle plus filtered, sorted, paginated
// listing and the distinct-value catalogue behind the filter dropdowns.
package books

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

const (
	// DefaultPageSize applies when the caller does not ask for one.
	DefaultPageSize = 50
	// MaxPageSize caps a single page so one request cannot pull the whole table.
	MaxPageSize = 200
)

// sortableColumns is the allow-list for the list sort key. Anything outside
// it falls back to title so user input never reaches ORDER BY verbatim.
var sortableColumns = map[string]string{
	"title":         "title",
	"author":        "author",
	"status":        "status",
	"genre":         "genre",
	"language":      "language",
	"purchase_year": "purchase_year",
	"created_at":    "created_at",
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create sanitizes the payload and inserts a new book. The returned record is
// re-read after the insert so the caller sees the engine-assigned id and
// timestamps, not the input echoed back.
func (r *Repository) Create(payload map[string]any) (*entities.Book, error) {
	book := Sanitize(payload)
	if book.Title == "" {
		return nil, errTitleRequired()
	}

	if err := r.db.Create(&book).Error; err != nil {
		return nil, err
	}
	return r.GetByID(book.ID)
}

// GetByID retrieves a book by its primary key, returning ErrNotFound when no
// row matches.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update overwrites every sanitized column of the book with the given id,
// absent optionals included, so a cleared field really clears. id and
// created_at stay untouched; updated_at is refreshed. Returns ErrNotFound
// when the update matches no row.
func (r *Repository) Update(id uint, payload map[string]any) (*entities.Book, error) {
	book := Sanitize(payload)
	if book.Title == "" {
		return nil, errTitleRequired()
	}

	updates := map[string]any{
		"title":             book.Title,
		"author":            book.Author,
		"series_name":       book.SeriesName,
		"series_number":     book.SeriesNumber,
		"is_series":         book.IsSeries,
		"pages":             book.Pages,
		"language":          book.Language,
		"genre":             book.Genre,
		"subgenre":          book.Subgenre,
		"status":            book.Status,
		"is_owned":          book.IsOwned,
		"is_nonfiction":     book.IsNonfiction,
		"purchase_year":     book.PurchaseYear,
		"purchase_location": book.PurchaseLocation,
		"publisher":         book.Publisher,
		"format":            book.Format,
		"source":            book.Source,
		"rating":            book.Rating,
		"notes":             book.Notes,
		"date_added":        book.DateAdded,
		"date_started":      book.DateStarted,
		"date_finished":     book.DateFinished,
	}

	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// Delete removes a book by id. The boolean reports whether a row actually
// existed; deleting a missing id is not an error.
func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListParams narrows and orders a listing. All filters combine with AND.
type ListParams struct {
	Search   string
	Status   string
	Genre    string
	Language string
	Sort     string
	Order    string
	Page     int
	PageSize int
}

// ListResult is one page of matching books plus the total match count,
// computed independently of the pagination window.
type ListResult struct {
	Items    []entities.Book `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// List returns the matching page of books. Search is a case-insensitive
// substring match over title and author; status, genre and language are
// exact filters. Results carry a secondary "id ASC" ordering so rows with
// equal sort-key values cannot shift between pages.
func (r *Repository) List(params ListParams) (*ListResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var total int64
	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, err
	}

	sortCol, ok := sortableColumns[params.Sort]
	if !ok {
		sortCol = "title"
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(params.Order), "desc") {
		direction = "DESC"
	}

	var items []entities.Book
	err := r.filtered(params).
		Order(sortCol + " " + direction).
		Order("id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entities.Book{}
	}

	return &ListResult{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (r *Repository) filtered(params ListParams) *gorm.DB {
	query := r.db.Model(&entities.Book{})
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}
	if status := strings.TrimSpace(params.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if genre := strings.TrimSpace(params.Genre); genre != "" {
		query = query.Where("genre = ?", genre)
	}
	if language := strings.TrimSpace(params.Language); language != "" {
		query = query.Where("language = ?", language)
	}
	return query
}

// Filters holds the distinct values currently present in the catalogue for
// the three filterable fields, each sorted ascending.
type Filters struct {
	Statuses  []string `json:"statuses"`
	Genres    []string `json:"genres"`
	Languages []string `json:"languages"`
}

// DistinctFilters derives the selection-widget options from the data itself:
// a category that no book carries any more disappears until one reintroduces
// it.
func (r *Repository) DistinctFilters() (*Filters, error) {
	filters := &Filters{
		Statuses:  []string{},
		Genres:    []string{},
		Languages: []string{},
	}
	for column, dest := range map[string]*[]string{
		"status":   &filters.Statuses,
		"genre":    &filters.Genres,
		"language": &filters.Languages,
	} {
		err := r.db.Model(&entities.Book{}).
			Distinct(column).
			Where(column + " IS NOT NULL AND " + column + " != ''").
			Order(column + " ASC").
			Pluck(column, dest).Error
		if err != nil {
			return nil, err
		}
	}
	return filters, nil
}
