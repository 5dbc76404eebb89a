package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nikhila-inturi/cartify/internal/order"
)

// Field layout: three customer fields, then four fields per line.
const (
	fieldCustomerID = iota
	fieldEmail
	fieldAddress
	customerFieldCount
)

const lineFieldCount = 4 // product id, name, quantity, unit price

// formModel is the create-order form: a flat list of text inputs with
// one focused at a time.
type formModel struct {
	inputs     []textinput.Model
	focus      int
	lines      int
	submitting bool
	localError string
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Width = width
	return in
}

func newLineInputs() []textinput.Model {
	return []textinput.Model{
		newInput("product id", 16),
		newInput("product name", 24),
		newInput("qty", 6),
		newInput("unit price", 10),
	}
}

func newFormModel() formModel {
	inputs := []textinput.Model{
		newInput("customer id", 24),
		newInput("customer@example.com", 32),
		newInput("shipping address", 48),
	}
	inputs = append(inputs, newLineInputs()...)

	f := formModel{inputs: inputs, lines: 1}
	f.inputs[0].Focus()
	return f
}

func (f formModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f *formModel) setFocus(idx int) {
	if idx < 0 {
		idx = len(f.inputs) - 1
	}
	if idx >= len(f.inputs) {
		idx = 0
	}
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = idx
}

func (f *formModel) addLine() {
	f.inputs = append(f.inputs, newLineInputs()...)
	f.lines++
}

func (f *formModel) removeLine() {
	if f.lines <= 1 {
		return
	}
	f.inputs = f.inputs[:len(f.inputs)-lineFieldCount]
	f.lines--
	if f.focus >= len(f.inputs) {
		f.setFocus(len(f.inputs) - 1)
	}
}

// draft builds the order draft from the inputs. Quantity and price
// must parse as numbers; nothing is silently coerced.
func (f *formModel) draft() (order.Draft, error) {
	d := order.Draft{
		CustomerID:      strings.TrimSpace(f.inputs[fieldCustomerID].Value()),
		CustomerEmail:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		ShippingAddress: strings.TrimSpace(f.inputs[fieldAddress].Value()),
	}

	for i := 0; i < f.lines; i++ {
		base := customerFieldCount + i*lineFieldCount
		qtyRaw := strings.TrimSpace(f.inputs[base+2].Value())
		priceRaw := strings.TrimSpace(f.inputs[base+3].Value())

		qty, err := strconv.Atoi(qtyRaw)
		if err != nil {
			return d, &formError{msg: "quantity must be a whole number"}
		}
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil {
			return d, &formError{msg: "unit price must be a number"}
		}

		d.Items = append(d.Items, order.DraftLine{
			ProductID:   strings.TrimSpace(f.inputs[base].Value()),
			ProductName: strings.TrimSpace(f.inputs[base+1].Value()),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}

	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}

type formError struct {
	msg string
}

func (e *formError) Error() string { return e.msg }

// updateForm handles keys while the create form is open.
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewDashboard
		m.form = formModel{}
		m.store.ClearError()
		return m, nil

	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case "ctrl+a":
		m.form.addLine()
		return m, nil

	case "ctrl+d":
		m.form.removeLine()
		return m, nil

	case "enter":
		if m.form.submitting {
			return m, nil
		}
		draft, err := m.form.draft()
		if err != nil {
			m.form.localError = err.Error()
			return m, nil
		}
		m.form.localError = ""
		m.form.submitting = true
		return m, m.createOrder(draft)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}
