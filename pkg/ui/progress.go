package ui

import (
	"fmt"
	"sync"
	"time"

	"biliscraper/pkg/models"
)

// RunProgress prints the operator trace for a collection run. It
// implements the collector's Progress interface: one banner per
// author, one line per extracted record, one tally when the author's
// scan ends.
type RunProgress struct {
	mu        sync.Mutex
	startTime time.Time
	authors   int
	records   int
}

// NewRunProgress creates a new run progress display
func NewRunProgress() *RunProgress {
	return &RunProgress{
		startTime: time.Now(),
	}
}

// StartAuthor announces the author about to be visited
func (p *RunProgress) StartAuthor(index, total int, author models.AuthorRef) {
	if IsQuietMode() {
		return
	}

	banner := fmt.Sprintf("[%d/%d]", index, total)
	if author.Category != "" {
		fmt.Printf("\n%s %s %s\n", Magenta(banner), Cyan(author.AuthorID), Dim("("+author.Category+")"))
	} else {
		fmt.Printf("\n%s %s\n", Magenta(banner), Cyan(author.AuthorID))
	}
}

// Record prints one extracted video as the listing is read
func (p *RunProgress) Record(record models.VideoRecord) {
	p.mu.Lock()
	p.records++
	p.mu.Unlock()

	if IsQuietMode() {
		return
	}
	fmt.Printf("%s - %s\n", record.Author, record.Title)
}

// FinishAuthor prints the author's tally
func (p *RunProgress) FinishAuthor(author models.AuthorRef, collected int) {
	p.mu.Lock()
	p.authors++
	p.mu.Unlock()

	if IsQuietMode() {
		return
	}
	fmt.Printf("%s %d videos\n", Green("✓"), collected)
}

// Counts returns how many authors finished and records printed so far
func (p *RunProgress) Counts() (authors, records int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.authors, p.records
}

// Elapsed returns the time since the display was created
func (p *RunProgress) Elapsed() time.Duration {
	return time.Since(p.startTime)
}
