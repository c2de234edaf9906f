package browser

import (
	"sync"

	"biliscraper/pkg/errors"
	"biliscraper/pkg/space"
)

// ScriptedSession implements the collector's session interface for
// testing purposes. Lookups resolve against stocked selector maps, and
// any selector that was not stocked reports not found, which is exactly
// how a real page signals the end of an upload list.
type ScriptedSession struct {
	mu sync.Mutex

	texts map[string]string
	attrs map[string]string

	// Error injection for testing
	NavigateErrs map[string]error
	TextErrs     map[string]error
	AttrErrs     map[string]error
	EvalErr      error
	CloseErr     error

	// Recorded activity
	Navigations []string
	Scripts     []string
	CloseCount  int
}

// NewScriptedSession creates an empty scripted session
func NewScriptedSession() *ScriptedSession {
	return &ScriptedSession{
		texts:        make(map[string]string),
		attrs:        make(map[string]string),
		NavigateErrs: make(map[string]error),
		TextErrs:     make(map[string]error),
		AttrErrs:     make(map[string]error),
	}
}

// Navigate records the URL and fails if an error was injected for it
func (s *ScriptedSession) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Navigations = append(s.Navigations, url)
	return s.NavigateErrs[url]
}

// Text returns the stocked text for a selector
func (s *ScriptedSession) Text(selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.TextErrs[selector]; err != nil {
		return "", err
	}

	text, exists := s.texts[selector]
	if !exists {
		return "", errors.Newf(errors.KindNotFound, "no element matches %q", selector)
	}
	return text, nil
}

// AttributeValue returns the stocked attribute value for a selector
func (s *ScriptedSession) AttributeValue(selector, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := selector + "@" + name
	if err := s.AttrErrs[key]; err != nil {
		return "", err
	}

	value, exists := s.attrs[key]
	if !exists {
		return "", errors.Newf(errors.KindNotFound, "element %q has no %s attribute", selector, name)
	}
	return value, nil
}

// Eval records the script and fails if an error was injected
func (s *ScriptedSession) Eval(script string, args ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Scripts = append(s.Scripts, script)
	return s.EvalErr
}

// Close counts teardowns so tests can assert the session is released
// exactly once
func (s *ScriptedSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CloseCount++
	return s.CloseErr
}

// StockText registers the text returned for a selector
func (s *ScriptedSession) StockText(selector, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.texts[selector] = text
}

// StockAttribute registers an attribute value for a selector
func (s *ScriptedSession) StockAttribute(selector, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs[selector+"@"+name] = value
}

// StockNickname stocks the creator display name in the page header
func (s *ScriptedSession) StockNickname(name string) {
	s.StockText(space.NicknameSelector, name)
}

// StockCard stocks the three per-card lookups behind one upload list
// entry at the given rank
func (s *ScriptedSession) StockCard(rank int, title, date, href string) {
	s.StockAttribute(space.CoverLinkSelector(rank), "href", href)
	s.StockText(space.TitleSelector(rank), title)
	s.StockText(space.PublishDateSelector(rank), date)
}

// NavigatedTo reports whether a URL was visited (useful for testing)
func (s *ScriptedSession) NavigatedTo(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, visited := range s.Navigations {
		if visited == url {
			return true
		}
	}
	return false
}
