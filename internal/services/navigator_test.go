package services

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/kmx/internal/shared"
)

func TestBrowserNavigator(t *testing.T) {
	t.Run("Redirect Opens Target", func(t *testing.T) {
		var opened []string
		nav := NewBrowserNavigator("http://kafka.local:8080", func(url string) error {
			opened = append(opened, url)
			return nil
		}, shared.NewLogger(&bytes.Buffer{}))

		if !nav.Redirect("/login") {
			t.Fatal("expected redirect to happen")
		}
		if nav.Location() != "/login" {
			t.Errorf("expected location /login, got %s", nav.Location())
		}
		if len(opened) != 1 || opened[0] != "http://kafka.local:8080/login" {
			t.Errorf("unexpected opened urls %v", opened)
		}
	})

	t.Run("Redirect To Current Location Is A No-op", func(t *testing.T) {
		calls := 0
		nav := NewBrowserNavigator("http://kafka.local", func(string) error {
			calls++
			return nil
		}, shared.NewLogger(&bytes.Buffer{}))
		nav.SetLocation("/login")

		if nav.Redirect("/login") {
			t.Error("expected no redirect when already on /login")
		}
		if calls != 0 {
			t.Errorf("expected opener not to be called, got %d", calls)
		}
	})

	t.Run("Nil Opener Logs Only", func(t *testing.T) {
		var logs bytes.Buffer
		nav := NewBrowserNavigator("http://kafka.local", nil, shared.NewLogger(&logs))

		if !nav.Redirect("/login") {
			t.Fatal("expected redirect to happen")
		}
		if !strings.Contains(logs.String(), "login required") {
			t.Errorf("expected warning in logs, got %q", logs.String())
		}
	})

	t.Run("Opener Failure Is Logged", func(t *testing.T) {
		var logs bytes.Buffer
		nav := NewBrowserNavigator("http://kafka.local", func(string) error {
			return errors.New("no display")
		}, shared.NewLogger(&logs))

		nav.Redirect("/login")
		if !strings.Contains(logs.String(), "no display") {
			t.Errorf("expected opener error in logs, got %q", logs.String())
		}
	})

	t.Run("Concurrent Redirects Move Once", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		nav := NewBrowserNavigator("http://kafka.local", func(string) error {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil
		}, shared.NewLogger(&bytes.Buffer{}))

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				nav.Redirect("/login")
			}()
		}
		wg.Wait()

		if calls != 1 {
			t.Errorf("expected a single browser open, got %d", calls)
		}
	})
}
