package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nikhila-inturi/cartify/internal/order"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case ViewDetail:
		return m.renderDetailView()
	case ViewForm:
		return m.renderFormView()
	default:
		return m.renderDashboardView()
	}
}

func (m Model) renderDashboardView() string {
	var b strings.Builder

	b.WriteString(styleHeader.Width(m.width).Render("  Cartify — Order Dashboard"))
	b.WriteString("\n\n")

	if m.state.LastError != "" {
		b.WriteString(styleError.Render("  Error: " + m.state.LastError))
		b.WriteString("\n\n")
	}
	if m.state.Loading {
		b.WriteString(styleMuted().Render("  Loading orders..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderSummaryCards())
	b.WriteString("\n\n")

	tableHeader := fmt.Sprintf(
		"  %-20s │ %-24s │ %-11s │ %10s │ %-10s",
		"Order #", "Customer", "Status", "Total", "Date",
	)
	b.WriteString(styleTableHeader.Width(m.width).Render(tableHeader))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if len(m.state.Items) == 0 && !m.state.Loading {
		b.WriteString(styleMuted().Render("  No orders yet. Press n to create one."))
		b.WriteString("\n")
	} else {
		visibleRows := m.height - 14
		if visibleRows < 5 {
			visibleRows = 5
		}

		startIdx := 0
		if m.selectedRow >= visibleRows {
			startIdx = m.selectedRow - visibleRows + 1
		}
		endIdx := startIdx + visibleRows
		if endIdx > len(m.state.Items) {
			endIdx = len(m.state.Items)
		}

		for i := startIdx; i < endIdx; i++ {
			b.WriteString(m.renderOrderRow(m.state.Items[i], i == m.selectedRow))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderPagination())
	b.WriteString("\n\n")

	help := "  [↑/↓] Navigate  [←/→] Page  [Enter] Details  [n] New  [s] Advance  [c] Cancel  [r] Refresh  [q] Quit"
	b.WriteString(styleHelp.Render(help))

	return b.String()
}

func (m Model) renderSummaryCards() string {
	counts := make(map[order.Status]int)
	for _, o := range m.state.Items {
		counts[o.Status]++
	}

	cards := []string{
		styleCard.Render(fmt.Sprintf("%s\n%s",
			styleCardValue.Foreground(colorPrimary).Render(fmt.Sprintf("%d", m.state.TotalElements)),
			styleMuted().Render("TOTAL"))),
	}
	for _, s := range order.Statuses {
		n, ok := counts[s]
		if !ok {
			continue
		}
		cards = append(cards, styleCard.Render(fmt.Sprintf("%s\n%s",
			styleCardValue.Foreground(statusColors[s]).Render(fmt.Sprintf("%d", n)),
			styleMuted().Render(string(s)))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderOrderRow(o order.Order, selected bool) string {
	number := o.OrderNumber
	if len(number) > 20 {
		number = number[:17] + "..."
	}

	customer := o.CustomerID
	if o.CustomerEmail != "" {
		customer += " <" + o.CustomerEmail + ">"
	}
	if len(customer) > 24 {
		customer = customer[:21] + "..."
	}

	date := ""
	if !o.CreatedAt.IsZero() {
		date = o.CreatedAt.Format("2006-01-02")
	}

	row := fmt.Sprintf(
		"  %-20s │ %-24s │ %s%-*s │ %10.2f │ %-10s",
		number,
		customer,
		StatusBadge(o.Status),
		11-len(o.Status), "",
		o.TotalAmount,
		date,
	)

	if selected {
		return styleTableRowSelected.Width(m.width).Render("▶" + row[1:])
	}
	return styleTableRow.Render(row)
}

func (m Model) renderPagination() string {
	if m.state.TotalPages <= 0 {
		return styleMuted().Render(fmt.Sprintf("  %d orders", m.state.TotalElements))
	}
	return styleMuted().Render(fmt.Sprintf(
		"  Page %d of %d  │  %d orders",
		m.state.CurrentPage+1, m.state.TotalPages, m.state.TotalElements,
	))
}

func (m Model) renderDetailView() string {
	var b strings.Builder

	b.WriteString(styleHeader.Width(m.width).Render("  Order Details"))
	b.WriteString("\n\n")

	if m.state.LastError != "" {
		b.WriteString(styleError.Render("  Error: " + m.state.LastError))
		b.WriteString("\n\n")
	}

	o := m.state.Selected
	if o == nil {
		b.WriteString(styleMuted().Render("  Loading order..."))
		b.WriteString("\n\n")
		b.WriteString(styleHelp.Render("  [esc] Back  [q] Quit"))
		return b.String()
	}

	var detail strings.Builder
	writeField := func(label, value string) {
		detail.WriteString(styleLabel.Render(label))
		detail.WriteString(value)
		detail.WriteString("\n")
	}

	writeField("Order #", o.OrderNumber)
	writeField("Customer", o.CustomerID)
	writeField("Email", o.CustomerEmail)
	if o.ShippingAddress != "" {
		writeField("Ship to", o.ShippingAddress)
	}
	writeField("Status", StatusBadge(o.Status))
	writeField("Total", fmt.Sprintf("$%.2f", o.TotalAmount))
	if !o.CreatedAt.IsZero() {
		writeField("Created", o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	detail.WriteString("\n")
	detail.WriteString(fmt.Sprintf("  %-24s %6s %12s %12s\n", "Product", "Qty", "Unit Price", "Subtotal"))
	for _, line := range o.Items {
		detail.WriteString(fmt.Sprintf("  %-24s %6d %12.2f %12.2f\n",
			truncate(line.ProductName, 24), line.Quantity, line.UnitPrice, line.Subtotal))
	}

	b.WriteString(styleBox.Render(detail.String()))
	b.WriteString("\n\n")

	actions := "  [esc] Back"
	if next, ok := o.Status.Next(); ok {
		actions += fmt.Sprintf("  [s] → %s", next)
	}
	if o.Status.Cancellable() {
		actions += "  [c] Cancel order"
	}
	actions += "  [q] Quit"
	b.WriteString(styleHelp.Render(actions))

	return b.String()
}

func (m Model) renderFormView() string {
	var b strings.Builder

	b.WriteString(styleHeader.Width(m.width).Render("  Create New Order"))
	b.WriteString("\n\n")

	if m.form.localError != "" {
		b.WriteString(styleError.Render("  " + m.form.localError))
		b.WriteString("\n\n")
	} else if m.state.LastError != "" {
		b.WriteString(styleError.Render("  " + m.state.LastError))
		b.WriteString("\n\n")
	}

	var form strings.Builder
	writeInput := func(label string, idx int) {
		form.WriteString(styleLabel.Render(label))
		form.WriteString(m.form.inputs[idx].View())
		form.WriteString("\n")
	}

	writeInput("Customer ID", fieldCustomerID)
	writeInput("Customer Email", fieldEmail)
	writeInput("Shipping Address", fieldAddress)

	for i := 0; i < m.form.lines; i++ {
		base := customerFieldCount + i*lineFieldCount
		form.WriteString("\n")
		form.WriteString(styleMuted().Render(fmt.Sprintf("  Item %d", i+1)))
		form.WriteString("\n")
		writeInput("  Product ID", base)
		writeInput("  Product Name", base+1)
		writeInput("  Quantity", base+2)
		writeInput("  Unit Price", base+3)
	}

	b.WriteString(styleBox.Render(form.String()))
	b.WriteString("\n\n")

	if m.form.submitting {
		b.WriteString(styleMuted().Render("  Submitting..."))
		b.WriteString("\n\n")
	}

	help := "  [tab] Next field  [ctrl+a] Add item  [ctrl+d] Remove item  [enter] Submit  [esc] Cancel"
	b.WriteString(styleHelp.Render(help))

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
