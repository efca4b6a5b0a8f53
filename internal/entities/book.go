package entities

import "time"

// Reading statuses form a closed set. Any value outside of it is
// normalized to StatusNotStarted before persistence.
const (
	StatusNotStarted = "Not Started"
	StatusReading    = "Reading"
	StatusPaused     = "Paused"
	StatusFinished   = "Finished"
	StatusDNF        = "DNF"
)

var validStatuses = map[string]struct{}{
	StatusNotStarted: {},
	StatusReading:    {},
	StatusPaused:     {},
	StatusFinished:   {},
	StatusDNF:        {},
}

// NormalizeStatus maps arbitrary input onto the status enumeration,
// falling back to "Not Started" for anything unrecognized or empty.
func NormalizeStatus(status string) string {
	if _, ok := validStatuses[status]; ok {
		return status
	}
	return StatusNotStarted
}

// Book is a single library entry. Every attribute except Title and Status is
// optional; pointer fields store NULL when the value is absent. The tri-state
// booleans (IsSeries, IsOwned, IsNonfiction) keep "unknown" as nil. The three
// date fields hold opaque user-entered text and are never parsed.
type Book struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"index;size:512;not null" json:"title"`
	Author           *string   `gorm:"index;size:256" json:"author"`
	SeriesName       *string   `gorm:"size:256" json:"series_name"`
	SeriesNumber     *int      `json:"series_number"`
	IsSeries         *bool     `json:"is_series"`
	Pages            *int      `json:"pages"`
	Language         *string   `gorm:"index;size:64" json:"language"`
	Genre            *string   `gorm:"index;size:128" json:"genre"`
	Subgenre         *string   `gorm:"size:128" json:"subgenre"`
	Status           string    `gorm:"index;size:32;not null;default:'Not Started'" json:"status"`
	IsOwned          *bool     `json:"is_owned"`
	IsNonfiction     *bool     `json:"is_nonfiction"`
	PurchaseYear     *int      `json:"purchase_year"`
	PurchaseLocation *string   `gorm:"size:256" json:"purchase_location"`
	Publisher        *string   `gorm:"size:256" json:"publisher"`
	Format           *string   `gorm:"size:64" json:"format"`
	Source           *string   `gorm:"size:128" json:"source"`
	Rating           *int      `json:"rating"`
	Notes            *string   `gorm:"type:text" json:"notes"`
	DateAdded        *string   `gorm:"size:64" json:"date_added"`
	DateStarted      *string   `gorm:"size:64" json:"date_started"`
	DateFinished     *string   `gorm:"size:64" json:"date_finished"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
