package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nikhila-inturi/cartify/internal/order"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.view == ViewForm {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)

	case stateMsg:
		m.state = msg.state
		m.clampSelection()
		if m.view == ViewForm {
			// A failed submit keeps the form open with the error.
			m.form.submitting = false
		}
		return m, nil

	case createdMsg:
		m.state = msg.state
		m.view = ViewDashboard
		m.selectedRow = 0
		m.form = formModel{}
		return m, nil

	case tickMsg:
		// Auto refresh the visible page; the form keeps its state.
		if m.view == ViewForm {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.fetchPage(m.state.CurrentPage), m.tickCmd())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.view == ViewDashboard && len(m.state.Items) > 0 {
			m.selectedRow--
			if m.selectedRow < 0 {
				m.selectedRow = len(m.state.Items) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.view == ViewDashboard && len(m.state.Items) > 0 {
			m.selectedRow++
			if m.selectedRow >= len(m.state.Items) {
				m.selectedRow = 0
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.view == ViewDashboard && m.state.CurrentPage > 0 {
			return m, m.fetchPage(m.state.CurrentPage - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.view == ViewDashboard && m.state.CurrentPage < m.state.TotalPages-1 {
			return m, m.fetchPage(m.state.CurrentPage + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.view == ViewDashboard {
			if o := m.selectedOrder(); o != nil {
				m.view = ViewDetail
				return m, m.fetchOrder(o.ID)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.view == ViewDetail {
			m.view = ViewDashboard
			m.store.ClearSelected()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		if m.view == ViewDashboard {
			m.view = ViewForm
			m.form = newFormModel()
			return m, m.form.focusCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		if o := m.actionTarget(); o != nil {
			if next, ok := o.Status.Next(); ok {
				return m, m.advanceStatus(o.ID, next)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if o := m.actionTarget(); o != nil && o.Status.Cancellable() {
			return m, m.cancelOrder(o.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.store.ClearError()
		return m, m.fetchPage(m.state.CurrentPage)
	}

	return m, nil
}

// actionTarget is the order a status action applies to: the detail
// order when open, else the highlighted row.
func (m Model) actionTarget() *order.Order {
	if m.view == ViewDetail && m.state.Selected != nil {
		return m.state.Selected
	}
	return m.selectedOrder()
}

func (m *Model) clampSelection() {
	if m.selectedRow >= len(m.state.Items) {
		m.selectedRow = len(m.state.Items) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}
