package books

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/mrlokans/library/internal/entities"
)

// Sanitize normalizes a loosely typed payload (a decoded JSON body or form
// submission) into a canonical record. It never fails: malformed optional
// fields collapse to nil and unrecognized statuses fall back to "Not
// Started". The one hard requirement, a non-empty title, is enforced by
// Create and Update rather than here.
func Sanitize(payload map[string]any) entities.Book {
	return entities.Book{
		Title:            strings.TrimSpace(cast.ToString(payload["title"])),
		Author:           cleanText(payload["author"]),
		SeriesName:       cleanText(payload["series_name"]),
		SeriesNumber:     intOrNil(payload["series_number"]),
		IsSeries:         boolOrNil(payload["is_series"]),
		Pages:            intOrNil(payload["pages"]),
		Language:         cleanText(payload["language"]),
		Genre:            cleanText(payload["genre"]),
		Subgenre:         cleanText(payload["subgenre"]),
		Status:           entities.NormalizeStatus(strings.TrimSpace(cast.ToString(payload["status"]))),
		IsOwned:          boolOrNil(payload["is_owned"]),
		IsNonfiction:     boolOrNil(payload["is_nonfiction"]),
		PurchaseYear:     intOrNil(payload["purchase_year"]),
		PurchaseLocation: cleanText(payload["purchase_location"]),
		Publisher:        cleanText(payload["publisher"]),
		Format:           cleanText(payload["format"]),
		Source:           cleanText(payload["source"]),
		Rating:           intOrNil(payload["rating"]),
		Notes:            cleanText(payload["notes"]),
		DateAdded:        cleanText(payload["date_added"]),
		DateStarted:      cleanText(payload["date_started"]),
		DateFinished:     cleanText(payload["date_finished"]),
	}
}

// cleanText trims the value and turns an empty result into nil.
func cleanText(value any) *string {
	v := strings.TrimSpace(cast.ToString(value))
	if v == "" {
		return nil
	}
	return &v
}

// intOrNil truncates numeric input to an integer. Anything non-numeric,
// empty or absent becomes nil rather than an error.
func intOrNil(value any) *int {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// boolOrNil parses the tri-state booleans. Only a small token set counts as
// true or false; everything else stays unknown (nil).
func boolOrNil(value any) *bool {
	if value == nil {
		return nil
	}
	if b, ok := value.(bool); ok {
		return &b
	}
	switch strings.ToLower(strings.TrimSpace(cast.ToString(value))) {
	case "1", "true", "yes", "y":
		t := true
		return &t
	case "0", "false", "no", "n":
		f := false
		return &f
	}
	return nil
}
