package browser

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"biliscraper/pkg/errors"
	"biliscraper/pkg/logger"
)

// Options configures how a live browser session is obtained
type Options struct {
	// Headless runs the browser without a visible window
	Headless bool

	// Flags holds raw browser switches such as --disable-gpu, passed
	// through to the launcher verbatim
	Flags []string

	// Binary overrides the autodetected browser executable, for
	// example the path to msedge
	Binary string

	// ControlURL attaches to an already running browser over the
	// DevTools protocol instead of launching a new one
	ControlURL string
}

// Session is a live page in a real browser. It exposes the four
// operations the collector needs: navigation, text lookup, attribute
// lookup, and script evaluation.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	owned    bool
	log      logger.Logger
}

// Open launches a browser (or attaches to a running one when
// ControlURL is set) and returns a session on a fresh page
func Open(opts Options) (*Session, error) {
	log := logger.GetLogger()

	if opts.ControlURL != "" {
		return attach(opts.ControlURL, log)
	}

	l := launcher.New().Headless(opts.Headless)
	if opts.Headless {
		// Chromium's legacy headless mode renders the upload list
		// differently; the "new" mode matches a headed window
		l.Set(flags.Headless, "new")
	}
	if opts.Binary != "" {
		l.Bin(opts.Binary)
	}
	applyFlags(l, opts.Flags)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(errors.KindStartup, "launch browser", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, errors.Wrap(errors.KindStartup, "connect to browser", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, errors.Wrap(errors.KindStartup, "open page", err)
	}

	log.WithFields(map[string]interface{}{
		"headless": opts.Headless,
		"binary":   opts.Binary,
	}).Debug("Browser session started")

	return &Session{browser: b, page: page, launcher: l, owned: true, log: log}, nil
}

// attach connects to a browser the operator already has running. The
// session owns only its page, not the browser process.
func attach(controlURL string, log logger.Logger) (*Session, error) {
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, errors.Wrapf(errors.KindStartup, err, "attach to browser at %s", controlURL)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.Wrap(errors.KindStartup, "open page", err)
	}

	log.WithField("control_url", controlURL).Debug("Attached to running browser")

	return &Session{browser: b, page: page, owned: false, log: log}, nil
}

// Navigate loads a URL and blocks until the page fires its load event
func (s *Session) Navigate(url string) error {
	start := time.Now()

	if err := s.page.Navigate(url); err != nil {
		logger.LogNavigation(url, time.Since(start), err)
		return errors.Wrapf(errors.KindNavigate, err, "navigate to %s", url)
	}
	if err := s.page.WaitLoad(); err != nil {
		logger.LogNavigation(url, time.Since(start), err)
		return errors.Wrapf(errors.KindNavigate, err, "wait for %s to load", url)
	}

	logger.LogNavigation(url, time.Since(start), nil)
	return nil
}

// Text returns the rendered text of the first element matching selector
func (s *Session) Text(selector string) (string, error) {
	el, err := s.find(selector)
	if err != nil {
		return "", err
	}

	text, err := el.Text()
	if err != nil {
		return "", errors.Wrapf(errors.KindEval, err, "read text of %q", selector)
	}
	return text, nil
}

// AttributeValue returns the named attribute of the first element
// matching selector. A present element without the attribute is
// reported as not found.
func (s *Session) AttributeValue(selector, name string) (string, error) {
	el, err := s.find(selector)
	if err != nil {
		return "", err
	}

	value, err := el.Attribute(name)
	if err != nil {
		return "", errors.Wrapf(errors.KindEval, err, "read %s of %q", name, selector)
	}
	if value == nil {
		return "", errors.Newf(errors.KindNotFound, "element %q has no %s attribute", selector, name)
	}
	return *value, nil
}

// Eval runs a JavaScript function expression on the page
func (s *Session) Eval(script string, args ...interface{}) error {
	if _, err := s.page.Eval(script, args...); err != nil {
		return errors.Wrap(errors.KindEval, "evaluate script", err)
	}
	return nil
}

// Close tears the session down. An owned browser process is shut down
// with it; an attached browser only loses the session's page.
func (s *Session) Close() error {
	if !s.owned {
		if err := s.page.Close(); err != nil {
			return errors.Wrap(errors.KindUnknown, "close page", err)
		}
		return nil
	}

	err := s.browser.Close()
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	if err != nil {
		return errors.Wrap(errors.KindUnknown, "close browser", err)
	}

	s.log.Debug("Browser session closed")
	return nil
}

// find locates an element without polling. The upload list is fully
// rendered after the scroll pass, so an absent element means the
// listing has ended rather than that it is still loading.
func (s *Session) find(selector string) (*rod.Element, error) {
	el, err := s.page.Sleeper(rod.NotFoundSleeper).Element(selector)
	if err != nil {
		if stderrors.Is(err, &rod.ElementNotFoundError{}) {
			return nil, errors.Newf(errors.KindNotFound, "no element matches %q", selector)
		}
		return nil, errors.Wrapf(errors.KindEval, err, "locate %q", selector)
	}
	return el, nil
}

// applyFlags passes raw command line switches through to the launcher
func applyFlags(l *launcher.Launcher, raw []string) {
	for _, f := range raw {
		name, value := splitFlag(f)
		if name == "" {
			continue
		}
		if value != "" {
			l.Set(flags.Flag(name), value)
		} else {
			l.Set(flags.Flag(name))
		}
	}
}

// splitFlag normalizes a raw switch like "--user-agent=Foo" into its
// name and optional value
func splitFlag(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimLeft(raw, "-")
	if raw == "" {
		return "", ""
	}

	name, value, found := strings.Cut(raw, "=")
	if !found {
		return name, ""
	}
	return name, value
}
