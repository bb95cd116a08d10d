package services

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kmx/internal/shared"
)

// Navigator tracks the client's current location and moves it on redirects.
type Navigator interface {
	// Location returns the application-relative path the client is on.
	Location() string
	// Redirect moves to path unless the client is already there. It reports whether a move happened.
	Redirect(path string) bool
}

// BrowserNavigator implements [Navigator] for a terminal client: a redirect opens the target page in the system browser.
//
// With a nil opener the redirect is only logged.
type BrowserNavigator struct {
	mu      sync.Mutex
	baseURL string
	current string
	open    func(url string) error
	logger  *log.Logger
}

// NewBrowserNavigator creates a navigator for pages under baseURL.
func NewBrowserNavigator(baseURL string, open func(url string) error, logger *log.Logger) *BrowserNavigator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BrowserNavigator{baseURL: baseURL, open: open, logger: logger}
}

// Location returns the current path.
func (n *BrowserNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// SetLocation records the path the client is on without opening anything.
func (n *BrowserNavigator) SetLocation(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}

// SetLogger replaces the logger used for redirect warnings.
func (n *BrowserNavigator) SetLogger(logger *log.Logger) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logger = logger
}

// Redirect moves to path, opening it in the browser when an opener is set.
func (n *BrowserNavigator) Redirect(path string) bool {
	n.mu.Lock()
	if n.current == path {
		n.mu.Unlock()
		return false
	}
	n.current = path
	n.mu.Unlock()

	target, err := shared.JoinURL(n.baseURL, path)
	if err != nil {
		n.logger.Warn("cannot build redirect URL", "path", path, "error", err)
		return true
	}

	n.logger.Warn("login required", "url", target)
	if n.open != nil {
		if err := n.open(target); err != nil {
			n.logger.Warn("failed to open browser", "url", target, "error", err)
		}
	}
	return true
}
