// Package browser binds the collector to a real Chromium-family
// browser over the DevTools protocol.
//
// This package includes:
//   - Open, which launches a browser (or attaches to a running one)
//     and returns a Session on a fresh page
//   - Session, the live binding exposing the four operations the
//     collector drives: Navigate, Text, AttributeValue, and Eval
//   - ScriptedSession, an in-memory stand-in that answers lookups from
//     stocked selector maps for tests and dry runs
//
// Example usage:
//
//	session, err := browser.Open(browser.Options{
//	    Headless: true,
//	    Binary:   "/usr/bin/microsoft-edge",
//	    Flags:    []string{"--disable-gpu"},
//	})
//	if err != nil {
//	    // Handle startup failure
//	}
//	defer session.Close()
//
//	if err := session.Navigate(space.LandingURL); err != nil {
//	    // Handle navigation failure
//	}
//	title, err := session.Text(space.TitleSelector(1))
//
// Lookups do not poll: the collector scrolls the page before reading
// it, so an absent element means the listing has ended. Absence is
// reported through the errors package and recognized with
// errors.IsNotFound.
package browser
