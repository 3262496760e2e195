package model

// Word represents one vocabulary entry in the daily catalog.
//
// WHY PublishedDate string (not time.Time)?
// The publish date is a calendar-date label ("2024-06-01"), not an instant.
// Storing it as a string keeps the lookup an exact string match and sidesteps
// time-zone conversion bugs entirely — the resolver formats "today" with the
// same layout and compares. The UNIQUE constraint on published_date gives us
// the "at most one word per date" guarantee by construction.
//
// Words are create-only: there are no update or delete endpoints, so a row
// never changes once inserted.
type Word struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"` // The word itself, indexed
	Description   string `json:"description"`
	Example       string `json:"example"`
	PublishedDate string `json:"published_date"` // ISO calendar date, globally unique
}
