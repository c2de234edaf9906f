package models

// AuthorRef identifies one creator whose upload listing gets collected.
// Category is free-form operator metadata carried through to the output
// unchanged; it may be empty.
type AuthorRef struct {
	AuthorID string `json:"author_id" yaml:"author_id"`
	Category string `json:"category" yaml:"category"`
}

// VideoRecord is one extracted listing entry. Author holds the display
// name read from the page header, not the numeric AuthorID. PublishDate
// is the verbatim page text (the site renders relative dates for recent
// uploads), so it stays a string.
type VideoRecord struct {
	Category    string `json:"category"`
	Author      string `json:"author"`
	Rank        int    `json:"rank"`
	PublishDate string `json:"publish_date"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}
