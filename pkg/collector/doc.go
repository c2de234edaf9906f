// Package collector provides the core functionality for gathering a
// creator's video-upload metadata from their space page.
//
// The collector package orchestrates the entire run, coordinating
// between the browser session, the pacing engine, and progress
// display.
//
// Architecture:
//
// The Collector struct is the main component that:
//   - Owns a single browser session for the whole run
//   - Visits authors strictly in input order
//   - Scrolls each upload list so lazily rendered cards appear
//   - Extracts records by positional lookup at ranks 1..maxVideos
//   - Stops an author's scan on the first failed lookup
//
// Usage:
//
//	cfg, err := config.Load("", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := collector.New(cfg)
//	records, err := c.Run(authors)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Early exit:
//
// Listing pages render videos contiguously, so the scan assumes a
// missing rank means every later rank is missing too. A failed lookup
// at rank N keeps ranks 1..N-1 and moves on to the next author; it is
// the normal end-of-listing signal, not an error. Only navigation,
// scrolling, and session startup failures abort the run.
//
// Substitution:
//
// The session, pacing, and progress collaborators are all injectable
// through setters, and browser.ScriptedSession satisfies
// BrowserSession, so a full run can execute against stocked page data
// with sleeps disabled.
package collector
