package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikhila-inturi/cartify/internal/order"
	"github.com/Nikhila-inturi/cartify/internal/store"
)

type fakeGateway struct {
	page *order.Page
}

func (f *fakeGateway) ListOrders(ctx context.Context, page, size int) (*order.Page, error) {
	return f.page, nil
}

func (f *fakeGateway) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	for i := range f.page.Orders {
		if f.page.Orders[i].ID == id {
			clone := f.page.Orders[i]
			return &clone, nil
		}
	}
	return nil, &notFoundErr{}
}

func (f *fakeGateway) CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	return &order.Order{ID: "new", Status: order.StatusPending}, nil
}

func (f *fakeGateway) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	return &order.Order{ID: id, Status: status}, nil
}

func (f *fakeGateway) CancelOrder(ctx context.Context, id string) error { return nil }

type notFoundErr struct{}

func (*notFoundErr) Error() string { return "order not found" }

func threeOrders() *order.Page {
	return &order.Page{
		Orders: []order.Order{
			{ID: "a", OrderNumber: "ORD-a", Status: order.StatusPending},
			{ID: "b", OrderNumber: "ORD-b", Status: order.StatusShipped},
			{ID: "c", OrderNumber: "ORD-c", Status: order.StatusDelivered},
		},
		TotalPages:    2,
		TotalElements: 23,
		PageNumber:    0,
	}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	st := store.New(&fakeGateway{page: threeOrders()})
	require.NoError(t, st.Fetch(context.Background(), 0, 20))

	m := NewModel(st, Options{PageSize: 20})
	m.state = st.Snapshot()
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(store.New(&fakeGateway{page: threeOrders()}), Options{})
	assert.Equal(t, ViewDashboard, m.view)
	assert.Equal(t, 20, m.pageSize)
	assert.NotZero(t, m.refreshEvery)
}

func TestCursorWrapsAround(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 2, m.selectedRow, "up from the first row wraps to the last")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 0, m.selectedRow, "down from the last row wraps to the first")
}

func TestStateMsgClampsSelection(t *testing.T) {
	m := loadedModel(t)
	m.selectedRow = 2

	shrunk := m.state
	shrunk.Items = shrunk.Items[:1]
	updated, _ := m.Update(stateMsg{state: shrunk})
	m = updated.(Model)

	assert.Equal(t, 0, m.selectedRow)
}

func TestPageNavigationBounds(t *testing.T) {
	m := loadedModel(t)

	// Already on the first page.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)

	// Page 1 of 2 exists.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.NotNil(t, cmd)

	m.state.CurrentPage = 1
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd, "no page past the last")
}

func TestEnterOpensDetail(t *testing.T) {
	m := loadedModel(t)
	m.selectedRow = 1

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Equal(t, ViewDetail, m.view)
	require.NotNil(t, cmd)

	msg := cmd()
	state, ok := msg.(stateMsg)
	require.True(t, ok)
	require.NotNil(t, state.state.Selected)
	assert.Equal(t, "b", state.state.Selected.ID)
}

func TestEnterOnEmptyListDoesNothing(t *testing.T) {
	st := store.New(&fakeGateway{page: &order.Page{Orders: []order.Order{}}})
	m := NewModel(st, Options{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Equal(t, ViewDashboard, m.view)
	assert.Nil(t, cmd)
}

func TestAdvanceSkipsTerminalStatus(t *testing.T) {
	m := loadedModel(t)

	m.selectedRow = 0 // PENDING
	_, cmd := m.Update(keyPress('s'))
	assert.NotNil(t, cmd)

	m.selectedRow = 2 // DELIVERED
	_, cmd = m.Update(keyPress('s'))
	assert.Nil(t, cmd)
}

func TestCancelOnlyWhenCancellable(t *testing.T) {
	m := loadedModel(t)

	m.selectedRow = 0 // PENDING
	_, cmd := m.Update(keyPress('c'))
	assert.NotNil(t, cmd)

	m.selectedRow = 1 // SHIPPED
	_, cmd = m.Update(keyPress('c'))
	assert.Nil(t, cmd)
}

func TestNewOpensForm(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(keyPress('n'))
	m = updated.(Model)

	assert.Equal(t, ViewForm, m.view)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.form.lines)
}

func TestCreatedMsgReturnsToDashboard(t *testing.T) {
	m := loadedModel(t)
	m.view = ViewForm
	m.form = newFormModel()

	updated, _ := m.Update(createdMsg{state: m.state})
	m = updated.(Model)

	assert.Equal(t, ViewDashboard, m.view)
	assert.Equal(t, 0, m.selectedRow)
	assert.Nil(t, m.form.inputs)
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
