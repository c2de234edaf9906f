package collector

import (
	"time"

	"biliscraper/pkg/browser"
	"biliscraper/pkg/config"
	"biliscraper/pkg/logger"
	"biliscraper/pkg/models"
	"biliscraper/pkg/pacing"
	"biliscraper/pkg/space"
)

// Collector orchestrates a collection run: one browser session,
// authors visited strictly in input order, ranks scanned strictly
// ascending within each author.
type Collector struct {
	cfg      *config.Config
	pacer    *pacing.Pacer
	progress Progress
	logger   logger.Logger
	launch   Launcher
}

// New creates a Collector wired to launch a real browser from the run
// configuration
func New(cfg *config.Config) *Collector {
	c := &Collector{
		cfg:    cfg,
		pacer:  pacing.New(),
		logger: logger.GetLogger(),
	}

	c.launch = func() (BrowserSession, error) {
		session, err := browser.Open(browser.Options{
			Headless:   cfg.Headless,
			Flags:      cfg.EdgeOptions,
			Binary:     cfg.BrowserBinary,
			ControlURL: cfg.RemoteDebuggingURL,
		})
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	return c
}

// SetLauncher replaces how the run obtains its browser session
func (c *Collector) SetLauncher(launch Launcher) {
	c.launch = launch
}

// SetPacer replaces the pacing engine
func (c *Collector) SetPacer(pacer *pacing.Pacer) {
	c.pacer = pacer
}

// SetProgress attaches a display for collection milestones
func (c *Collector) SetProgress(progress Progress) {
	c.progress = progress
}

// SetLogger replaces the collector's logger
func (c *Collector) SetLogger(log logger.Logger) {
	c.logger = log
}

// Run collects upload metadata for every author, in input order. The
// browser session is owned by this call and released exactly once,
// whether the run completes or aborts.
func (c *Collector) Run(authors []models.AuthorRef) ([]models.VideoRecord, error) {
	start := time.Now()

	c.logger.InfoWithFields("Starting collection run", map[string]interface{}{
		"authors":    len(authors),
		"max_videos": c.cfg.MaxVideosPerAuthor,
		"headless":   c.cfg.Headless,
	})

	session, err := c.launch()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close browser session")
		}
	}()

	// Warm up on the front page so space pages are visited the way a
	// human arrives at them
	if err := session.Navigate(space.LandingURL); err != nil {
		return nil, err
	}
	c.pacer.Settle(c.cfg.LandingSettle.Min, c.cfg.LandingSettle.Max)

	var records []models.VideoRecord
	for i, author := range authors {
		if c.progress != nil {
			c.progress.StartAuthor(i+1, len(authors), author)
		}

		collected, err := c.collectAuthor(session, author)
		if err != nil {
			return nil, err
		}

		records = append(records, collected...)
		if c.progress != nil {
			c.progress.FinishAuthor(author, len(collected))
		}
	}

	c.logger.InfoWithFields("Collection run completed", map[string]interface{}{
		"authors":  len(authors),
		"records":  len(records),
		"duration": time.Since(start).String(),
	})
	return records, nil
}

// collectAuthor visits one author's upload list and extracts records
// until the listing ends, a lookup fails, or the per-author cap is hit
func (c *Collector) collectAuthor(session BrowserSession, author models.AuthorRef) ([]models.VideoRecord, error) {
	c.logger.DebugWithFields("Opening upload list", map[string]interface{}{
		"author_id": author.AuthorID,
		"category":  author.Category,
	})

	if err := session.Navigate(space.UploadListURL(author.AuthorID)); err != nil {
		return nil, err
	}

	c.pacer.Settle(c.cfg.SleepAfterLoad.Min, c.cfg.SleepAfterLoad.Max)
	if err := c.pacer.Scroll(session, c.cfg.ScrollSteps.Min, c.cfg.ScrollSteps.Max); err != nil {
		return nil, err
	}

	var collected []models.VideoRecord
	for rank := 1; rank <= c.cfg.MaxVideosPerAuthor; rank++ {
		record, err := c.extract(session, author, rank)
		if err != nil {
			logger.LogExtractionStop(author.AuthorID, rank, err)
			break
		}

		collected = append(collected, record)
		if c.progress != nil {
			c.progress.Record(record)
		}
	}

	c.logger.InfoWithFields("Author scan finished", map[string]interface{}{
		"author_id": author.AuthorID,
		"category":  author.Category,
		"collected": len(collected),
	})
	return collected, nil
}

// extract reads the four per-rank lookups in page order: cover href,
// title, publish date, then the page-level display name. The first
// failure of any kind ends this author's scan; the listing renders
// contiguously, so a missing rank means no later rank is present
// either.
func (c *Collector) extract(session BrowserSession, author models.AuthorRef, rank int) (models.VideoRecord, error) {
	href, err := session.AttributeValue(space.CoverLinkSelector(rank), "href")
	if err != nil {
		return models.VideoRecord{}, err
	}

	title, err := session.Text(space.TitleSelector(rank))
	if err != nil {
		return models.VideoRecord{}, err
	}

	publishDate, err := session.Text(space.PublishDateSelector(rank))
	if err != nil {
		return models.VideoRecord{}, err
	}

	name, err := session.Text(space.NicknameSelector)
	if err != nil {
		return models.VideoRecord{}, err
	}

	return models.VideoRecord{
		Category:    author.Category,
		Author:      name,
		Rank:        rank,
		PublishDate: publishDate,
		Title:       title,
		URL:         space.CanonicalVideoURL(href),
	}, nil
}
