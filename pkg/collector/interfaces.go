package collector

import "biliscraper/pkg/models"

// BrowserSession defines the interface for the live page the collector
// drives. Anything that can navigate, read elements, and run scripts
// can stand in for a real browser, including a scripted fake.
type BrowserSession interface {
	Navigate(url string) error
	Text(selector string) (string, error)
	AttributeValue(selector, name string) (string, error)
	Eval(script string, args ...interface{}) error
	Close() error
}

// Launcher produces the session a run will own for its whole lifetime
type Launcher func() (BrowserSession, error)

// Progress receives collection milestones for operator display
type Progress interface {
	// StartAuthor is called before an author's space is visited.
	// index is 1-based.
	StartAuthor(index, total int, author models.AuthorRef)

	// Record is called once per extracted video, in rank order
	Record(record models.VideoRecord)

	// FinishAuthor is called after an author's scan ends, with the
	// number of records it produced
	FinishAuthor(author models.AuthorRef, collected int)
}
