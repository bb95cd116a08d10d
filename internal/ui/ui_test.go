package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/tasks"
)

type mockCollector struct {
	items []models.Item
	err   error
	calls int
}

func (m *mockCollector) Collect(ctx context.Context, indexPath string, progress chan<- tasks.ProgressUpdate) ([]models.Item, error) {
	m.calls++
	if progress != nil {
		progress <- tasks.ProgressUpdate{Phase: tasks.FetchItems, Step: 1, Total: len(m.items), Message: "[1/2] orders"}
	}
	return m.items, m.err
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs the command chain started by Init until the collection result is delivered.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		_, cmd = m.Update(msg)
		if m.view != LoadingView {
			return
		}
	}
	if m.view == LoadingView {
		t.Fatal("collection never completed")
	}
}

func sampleItems() []models.Item {
	return []models.Item{
		{"name": "orders", "size": float64(1536), "partition_count": float64(3), "message_count": float64(42)},
		{"name": "payments", "size": float64(10)},
	}
}

func TestModel(t *testing.T) {
	t.Run("Init Collects And Shows List", func(t *testing.T) {
		c := &mockCollector{items: sampleItems()}
		m := NewModel(context.Background(), c, "/api/topics.json")
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		if !strings.Contains(m.View(), "Loading /api/topics.json") {
			t.Errorf("expected loading view, got %q", m.View())
		}

		drain(t, m, m.Init())

		if m.view != ItemListView {
			t.Fatalf("expected list view, got %v", m.view)
		}
		if len(m.Items()) != 2 || c.calls != 1 {
			t.Errorf("expected 2 items from one collection, got %d items, %d calls", len(m.Items()), c.calls)
		}
		if !strings.Contains(m.View(), "orders") {
			t.Errorf("expected list to show orders, got %q", m.View())
		}
	})

	t.Run("Progress Updates Loading View", func(t *testing.T) {
		m := NewModel(context.Background(), &mockCollector{}, "/api/topics.json")
		m.Update(progressUpdateMsg(tasks.ProgressUpdate{Phase: tasks.FetchItems, Step: 3, Total: 7, Message: "[3/7] orders"}))

		view := m.View()
		if !strings.Contains(view, "Fetching items (3/7)") {
			t.Errorf("expected progress in view, got %q", view)
		}
	})

	t.Run("Enter Opens Detail And Esc Returns", func(t *testing.T) {
		m := NewModel(context.Background(), &mockCollector{}, "/api/topics.json")
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
		m.Update(itemsCollectedMsg(sampleItems(), nil))

		m.Update(keyMsg("enter"))
		if m.view != DetailView {
			t.Fatalf("expected detail view, got %v", m.view)
		}
		if m.selected.Name() != "orders" {
			t.Errorf("expected first item selected, got %q", m.selected.Name())
		}
		if !strings.Contains(m.View(), `"partition_count": 3`) {
			t.Errorf("expected JSON detail, got %q", m.View())
		}

		m.Update(keyMsg("esc"))
		if m.view != ItemListView || m.selected != nil {
			t.Errorf("expected list view with no selection, got %v", m.view)
		}
	})

	t.Run("Error Is Shown", func(t *testing.T) {
		m := NewModel(context.Background(), &mockCollector{}, "/api/topics.json")
		m.Update(itemsCollectedMsg(nil, errors.New("status 500")))

		if m.Err() == nil {
			t.Fatal("expected error to be kept")
		}
		if !strings.Contains(m.View(), "status 500") {
			t.Errorf("expected error in view, got %q", m.View())
		}

		_, cmd := m.Update(keyMsg("enter"))
		if cmd != nil || m.view != ItemListView {
			t.Error("expected enter to be ignored on error")
		}
	})

	t.Run("Refresh Collects Again", func(t *testing.T) {
		c := &mockCollector{items: sampleItems()}
		m := NewModel(context.Background(), c, "/api/topics.json")
		drain(t, m, m.Init())

		_, cmd := m.Update(keyMsg("r"))
		if m.view != LoadingView {
			t.Fatalf("expected loading view after refresh, got %v", m.view)
		}
		drain(t, m, cmd)
		if c.calls != 2 {
			t.Errorf("expected two collections, got %d", c.calls)
		}
	})

	t.Run("Quit", func(t *testing.T) {
		for _, view := range []ViewState{LoadingView, ItemListView, DetailView} {
			m := NewModel(context.Background(), &mockCollector{}, "/api/topics.json")
			m.Update(itemsCollectedMsg(sampleItems(), nil))
			m.view = view

			_, cmd := m.Update(keyMsg("q"))
			if cmd == nil {
				t.Fatalf("expected quit command in view %v", view)
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("expected tea.QuitMsg in view %v", view)
			}
		}
	})

	t.Run("Item Description", func(t *testing.T) {
		tests := []struct {
			item models.Item
			want string
		}{
			{models.Item{"name": "orders", "size": float64(1536), "partition_count": float64(3)}, "1.5 kB • 3 partitions"},
			{models.Item{"name": "g1", "lag": float64(2), "topics": []any{}}, "lag, name, topics"},
		}
		for _, tt := range tests {
			if got := (resourceItem{item: tt.item}).Description(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		}
		if got := (resourceItem{item: models.Item{}}).Title(); got != "(unnamed)" {
			t.Errorf("expected placeholder title, got %q", got)
		}
	})
}

func TestPalette(t *testing.T) {
	theme := Theme{Accent: "#111111", Loading: "#222222", Count: "#333333", Failure: "#444444", Muted: "#555555"}
	p := newPalette(theme)

	t.Run("roles take theme colors", func(t *testing.T) {
		tests := []struct {
			name  string
			style lipgloss.Style
			want  string
		}{
			{"heading", p.heading, theme.Accent},
			{"phase", p.phase, theme.Loading},
			{"message", p.message, theme.Muted},
			{"count", p.count, theme.Count},
			{"failure", p.failure, theme.Failure},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.style.GetForeground(); got != lipgloss.Color(tt.want) {
					t.Errorf("expected %s, got %v", tt.want, got)
				}
			})
		}
	})

	t.Run("selected row uses accent", func(t *testing.T) {
		d := p.delegate()
		if got := d.Styles.SelectedTitle.GetForeground(); got != lipgloss.Color(theme.Accent) {
			t.Errorf("expected accent title, got %v", got)
		}
		if got := d.Styles.SelectedDesc.GetForeground(); got != lipgloss.Color(theme.Muted) {
			t.Errorf("expected muted description, got %v", got)
		}
	})

	t.Run("list title bar uses accent", func(t *testing.T) {
		s := p.titleBar(list.DefaultStyles())
		if got := s.Title.GetBackground(); got != lipgloss.Color(theme.Accent) {
			t.Errorf("expected accent background, got %v", got)
		}
	})
}
