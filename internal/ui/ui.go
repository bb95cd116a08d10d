package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/kmx/internal/models"
	"github.com/desertthunder/kmx/internal/shared"
	"github.com/desertthunder/kmx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ItemListView
	DetailView
)

// Collector gathers the items of a list resource. Implemented by [tasks.ListAggregator].
type Collector interface {
	Collect(ctx context.Context, indexPath string, progress chan<- tasks.ProgressUpdate) ([]models.Item, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	collector    Collector
	indexPath    string
	width        int
	height       int
	itemList     list.Model
	listReady    bool
	items        []models.Item
	detail       viewport.Model
	selected     models.Item
	progressChan chan tasks.ProgressUpdate
	resultChan   chan Msg
	progress     tasks.ProgressUpdate
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a TUI model that browses the list at indexPath.
func NewModel(ctx context.Context, collector Collector, indexPath string) *Model {
	return &Model{
		ctx:       ctx,
		view:      LoadingView,
		collector: collector,
		indexPath: indexPath,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Items returns the most recently collected items.
func (m *Model) Items() []models.Item { return m.items }

// Err returns the error that ended the last collection, if any.
func (m *Model) Err() error { return m.err }

// Init starts collecting the list.
func (m *Model) Init() tea.Cmd {
	return m.startCollect()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.itemList.SetSize(m.listSize())
		}
		m.detail.Width, m.detail.Height = m.detailSize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case ItemListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForProgress()
		case MsgItemsCollected:
			res := msg.data.(itemsCollected)
			m.progressChan = nil
			m.resultChan = nil
			m.setItems(res.items, res.err)
			return m, nil
		}
	}

	return m.updateViews(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case ItemListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) setItems(items []models.Item, err error) {
	m.err = err
	m.view = ItemListView
	if err != nil {
		return
	}

	m.items = items
	entries := make([]list.Item, len(items))
	for i, item := range items {
		entries[i] = resourceItem{item: item}
	}
	m.itemList = list.New(entries, styles.delegate(), 0, 0)
	m.itemList.Styles = styles.titleBar(m.itemList.Styles)
	m.itemList.Title = fmt.Sprintf("%s (%d)", m.indexPath, len(items))
	m.itemList.SetSize(m.listSize())
	m.listReady = true
}

func (m *Model) listSize() (int, int) {
	return max(m.width-4, 0), max(m.height-8, 0)
}

func (m *Model) detailSize() (int, int) {
	return max(m.width-4, 0), max(m.height-6, 0)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.listReady && m.err == nil && m.itemList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.itemList, cmd = m.itemList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.view = LoadingView
		m.progress = tasks.ProgressUpdate{}
		return m, m.startCollect()
	case key.Matches(msg, m.keys.enter):
		if m.err != nil {
			return m, nil
		}
		if selected, ok := m.itemList.SelectedItem().(resourceItem); ok {
			m.openDetail(selected.item)
		}
		return m, nil
	}

	if m.err != nil || !m.listReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ItemListView
		m.selected = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) openDetail(item models.Item) {
	m.selected = item
	body, err := shared.MarshalJSON(item, true)
	if err != nil {
		body = []byte(err.Error())
	}
	m.detail = viewport.New(m.detailSize())
	m.detail.SetContent(string(body))
	m.view = DetailView
}

func (m *Model) updateViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ItemListView:
		if m.err == nil && m.listReady {
			m.itemList, cmd = m.itemList.Update(msg)
		}
	case DetailView:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

// startCollect runs the aggregation on its own goroutine. The result is queued before the progress channel closes.
func (m *Model) startCollect() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	result := make(chan Msg, 1)
	m.progressChan = progress
	m.resultChan = result

	go func() {
		items, err := m.collector.Collect(m.ctx, m.indexPath, progress)
		result <- itemsCollectedMsg(items, err)
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, result := m.progressChan, m.resultChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		update, ok := <-progress
		if !ok {
			return <-result
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderLoading() string {
	title := styles.heading.Render(fmt.Sprintf("Loading %s", m.indexPath))

	var phase string
	switch m.progress.Phase {
	case tasks.FetchItems:
		phase = fmt.Sprintf("Fetching items (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Fetching index..."
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, styles.phase.Render(phase), styles.message.Render(m.progress.Message), helpView)
}

func (m *Model) renderList() string {
	if m.err != nil {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.failure.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.itemList.View(), helpView)
}

func (m *Model) renderDetail() string {
	title := styles.heading.Render(m.selected.Name())
	fields := styles.count.Render(fmt.Sprintf("%d fields", len(m.selected)))
	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, fields, m.detail.View(), helpView)
}
