// Package stats computes the dashboard summary: a handful of scalar KPIs
// plus the categorical and temporal breakdowns behind the charts. Every call
// is a fresh, read-only snapshot of the books table; nothing is cached or
// maintained incrementally.
package stats

import (
	"math"

	"gorm.io/gorm"
)

// Metric is one labelled value of a grouped breakdown.
type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// YearMetric is one point of the purchase-year trend.
type YearMetric struct {
	Year  int     `gorm:"column:label" json:"label"`
	Value float64 `json:"value"`
}

// KPIs are the scalar headline numbers. AvgPages is nil when no book has a
// page count, mirroring SQL AVG over an empty set.
type KPIs struct {
	TotalBooks      int64    `json:"total_books"`
	FinishedBooks   int64    `json:"finished_books"`
	ReadingBooks    int64    `json:"reading_books"`
	PausedBooks     int64    `json:"paused_books"`
	NotStartedBooks int64    `json:"not_started_books"`
	DNFBooks        int64    `gorm:"column:dnf_books" json:"dnf_books"`
	AvgPages        *float64 `json:"avg_pages"`
	ReadRatio       float64  `gorm:"-" json:"read_ratio"`
}

// Dashboard is the full analytics payload.
type Dashboard struct {
	KPIs            KPIs         `json:"kpis"`
	ByStatus        []Metric     `json:"by_status"`
	ByGenre         []Metric     `json:"by_genre"`
	TopAuthors      []Metric     `json:"top_authors"`
	TopSubgenres    []Metric     `json:"top_subgenres"`
	PagesByStatus   []Metric     `json:"pages_by_status"`
	CompletedByYear []YearMetric `json:"completed_by_year"`
	OwnershipSplit  []Metric     `json:"ownership_split"`
	NonfictionSplit []Metric     `json:"nonfiction_split"`
	TopPublishers   []Metric     `json:"top_publishers"`
}

const kpiQuery = `
SELECT
  COUNT(*) AS total_books,
  COALESCE(SUM(CASE WHEN status = 'Finished' THEN 1 ELSE 0 END), 0) AS finished_books,
  COALESCE(SUM(CASE WHEN status = 'Reading' THEN 1 ELSE 0 END), 0) AS reading_books,
  COALESCE(SUM(CASE WHEN status = 'Paused' THEN 1 ELSE 0 END), 0) AS paused_books,
  COALESCE(SUM(CASE WHEN status = 'Not Started' THEN 1 ELSE 0 END), 0) AS not_started_books,
  COALESCE(SUM(CASE WHEN status = 'DNF' THEN 1 ELSE 0 END), 0) AS dnf_books,
  ROUND(AVG(CASE WHEN pages IS NOT NULL THEN pages END), 1) AS avg_pages
FROM books`

// Grouped breakdowns skip rows where the grouping key is NULL or empty; such
// rows still count towards total_books. Ties order by label so the result is
// deterministic.
const (
	byStatusQuery = `SELECT status AS label, COUNT(*) AS value FROM books
WHERE status IS NOT NULL AND status != ''
GROUP BY status ORDER BY value DESC, label ASC`

	byGenreQuery = `SELECT genre AS label, COUNT(*) AS value FROM books
WHERE genre IS NOT NULL AND genre != ''
GROUP BY genre ORDER BY value DESC, label ASC LIMIT 12`

	topAuthorsQuery = `SELECT author AS label, COUNT(*) AS value FROM books
WHERE author IS NOT NULL AND author != ''
GROUP BY author ORDER BY value DESC, label ASC LIMIT 10`

	topSubgenresQuery = `SELECT subgenre AS label, COUNT(*) AS value FROM books
WHERE subgenre IS NOT NULL AND subgenre != ''
GROUP BY subgenre ORDER BY value DESC, label ASC LIMIT 12`

	pagesByStatusQuery = `SELECT status AS label, ROUND(AVG(pages), 1) AS value FROM books
WHERE pages IS NOT NULL AND status IS NOT NULL AND status != ''
GROUP BY status ORDER BY value DESC, label ASC`

	completedByYearQuery = `SELECT purchase_year AS label,
ROUND((SUM(CASE WHEN status = 'Finished' THEN 1 ELSE 0 END) * 100.0) / COUNT(*), 2) AS value
FROM books WHERE purchase_year IS NOT NULL
GROUP BY purchase_year ORDER BY purchase_year ASC`

	ownershipSplitQuery = `SELECT
CASE WHEN is_owned = 1 THEN 'Owned' WHEN is_owned = 0 THEN 'Not Owned' ELSE 'Unknown' END AS label,
COUNT(*) AS value FROM books GROUP BY label ORDER BY value DESC, label ASC`

	nonfictionSplitQuery = `SELECT
CASE WHEN is_nonfiction = 1 THEN 'Nonfiction' WHEN is_nonfiction = 0 THEN 'Fiction' ELSE 'Unknown' END AS label,
COUNT(*) AS value FROM books GROUP BY label ORDER BY value DESC, label ASC`

	topPublishersQuery = `SELECT publisher AS label, COUNT(*) AS value FROM books
WHERE publisher IS NOT NULL AND publisher != ''
GROUP BY publisher ORDER BY value DESC, label ASC LIMIT 10`
)

// Repository computes dashboard aggregates.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Dashboard runs the full set of aggregate queries against the current state
// of the books table.
func (r *Repository) Dashboard() (*Dashboard, error) {
	var kpis KPIs
	if err := r.db.Raw(kpiQuery).Scan(&kpis).Error; err != nil {
		return nil, err
	}
	if kpis.TotalBooks > 0 {
		ratio := float64(kpis.FinishedBooks) / float64(kpis.TotalBooks) * 100
		kpis.ReadRatio = math.Round(ratio*100) / 100
	}

	dashboard := &Dashboard{KPIs: kpis}

	var err error
	if dashboard.ByStatus, err = r.metrics(byStatusQuery); err != nil {
		return nil, err
	}
	if dashboard.ByGenre, err = r.metrics(byGenreQuery); err != nil {
		return nil, err
	}
	if dashboard.TopAuthors, err = r.metrics(topAuthorsQuery); err != nil {
		return nil, err
	}
	if dashboard.TopSubgenres, err = r.metrics(topSubgenresQuery); err != nil {
		return nil, err
	}
	if dashboard.PagesByStatus, err = r.metrics(pagesByStatusQuery); err != nil {
		return nil, err
	}
	if dashboard.OwnershipSplit, err = r.metrics(ownershipSplitQuery); err != nil {
		return nil, err
	}
	if dashboard.NonfictionSplit, err = r.metrics(nonfictionSplitQuery); err != nil {
		return nil, err
	}
	if dashboard.TopPublishers, err = r.metrics(topPublishersQuery); err != nil {
		return nil, err
	}

	dashboard.CompletedByYear = []YearMetric{}
	if err := r.db.Raw(completedByYearQuery).Scan(&dashboard.CompletedByYear).Error; err != nil {
		return nil, err
	}

	return dashboard, nil
}

func (r *Repository) metrics(query string) ([]Metric, error) {
	metrics := []Metric{}
	err := r.db.Raw(query).Scan(&metrics).Error
	return metrics, err
}
