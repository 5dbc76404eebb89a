// Package tui implements the interactive order dashboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nikhila-inturi/cartify/internal/order"
	"github.com/Nikhila-inturi/cartify/internal/store"
)

// ViewType is the active screen.
type ViewType int

const (
	ViewDashboard ViewType = iota // summary cards + order table
	ViewDetail                    // one order with its lines
	ViewForm                      // create-order form
)

// Options tune the dashboard.
type Options struct {
	PageSize        int
	RefreshInterval time.Duration
}

// Model is the main TUI model. All order state lives in the store; the
// model keeps the latest snapshot plus pure view state.
type Model struct {
	store *store.Store
	state store.State

	view        ViewType
	selectedRow int
	form        formModel

	pageSize     int
	refreshEvery time.Duration

	width  int
	height int

	keys keyMap
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Enter    key.Binding
	Back     key.Binding
	New      key.Binding
	Advance  key.Binding
	Cancel   key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new order"),
		),
		Advance: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "advance status"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel order"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewModel creates the dashboard model over an order store.
func NewModel(st *store.Store, opts Options) Model {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = 10 * time.Second
	}

	return Model{
		store:        st,
		view:         ViewDashboard,
		pageSize:     pageSize,
		refreshEvery: refresh,
		keys:         defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(0),
		m.tickCmd(),
	)
}

// Messages

// stateMsg carries a fresh store snapshot after any operation resolves.
type stateMsg struct {
	state store.State
}

// createdMsg signals a successful form submission.
type createdMsg struct {
	state store.State
}

type tickMsg time.Time

// Commands. Every store operation resumes with a snapshot; the store
// itself already normalized any failure into the snapshot's LastError.

func (m Model) fetchPage(page int) tea.Cmd {
	st, size := m.store, m.pageSize
	return func() tea.Msg {
		_ = st.Fetch(context.Background(), page, size)
		return stateMsg{state: st.Snapshot()}
	}
}

func (m Model) fetchOrder(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		_ = st.FetchByID(context.Background(), id)
		return stateMsg{state: st.Snapshot()}
	}
}

func (m Model) createOrder(draft order.Draft) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.Create(context.Background(), draft); err != nil {
			return stateMsg{state: st.Snapshot()}
		}
		return createdMsg{state: st.Snapshot()}
	}
}

func (m Model) advanceStatus(id string, next order.Status) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		_ = st.UpdateStatus(context.Background(), id, next)
		return stateMsg{state: st.Snapshot()}
	}
}

func (m Model) cancelOrder(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		_ = st.Cancel(context.Background(), id)
		return stateMsg{state: st.Snapshot()}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// selectedOrder returns the order under the cursor, if any.
func (m Model) selectedOrder() *order.Order {
	if m.selectedRow < 0 || m.selectedRow >= len(m.state.Items) {
		return nil
	}
	return &m.state.Items[m.selectedRow]
}
