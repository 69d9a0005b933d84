package tickets

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

const printedAtLayout = "2006-01-02 15:04:05 MST"

// Names resolves display names printed on the ticket.
type Names interface {
	RestaurantName(id string) string
	ItemName(id string) string
}

// Line is one printed item row.
type Line struct {
	Quantity   int
	Name       string
	Portion    string
	UnitPrice  string
	LineTotal  string
	ItemNotes  string
	OrderNotes string
}

// Document holds everything a ticket shows.
type Document struct {
	Restaurant    string
	Table         string
	CustomerName  string
	CustomerPhone string
	PrintedAt     time.Time
	Trigger       enums.Trigger
	AutoStatus    bool
	Lines         []Line
	Subtotal      string
}

// TriggerLabel is the banner printed at the top of the ticket.
func (d Document) TriggerLabel() string {
	if d.Trigger == enums.TriggerManual {
		return "MANUAL PRINT"
	}
	return "AUTO-PRINTED"
}

// PrintedAtDisplay formats the print instant in UTC.
func (d Document) PrintedAtDisplay() string {
	return d.PrintedAt.UTC().Format(printedAtLayout)
}

// Rendered carries both output formats of one ticket.
type Rendered struct {
	Document Document
	Text     string
	HTML     string
}

const textLayout = `{{.Restaurant}}
KITCHEN TICKET - {{.TriggerLabel}}
{{if .AutoStatus}}AUTO-STATUS ACTIVE
{{end}}Table: {{.Table}}
Customer: {{.CustomerName}}{{if .CustomerPhone}} ({{.CustomerPhone}}){{end}}
Printed: {{.PrintedAtDisplay}}
----------------------------------------
{{range .Lines}}{{.Quantity}}x {{.Name}}{{if .Portion}} [{{.Portion}}]{{end}} @ {{.UnitPrice}} = {{.LineTotal}}
{{if .ItemNotes}}   note: {{.ItemNotes}}
{{end}}{{if .OrderNotes}}   order note: {{.OrderNotes}}
{{end}}{{end}}----------------------------------------
Subtotal: {{.Subtotal}}
`

const htmlLayout = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Ticket {{.Table}}</title>
<style>body{font-family:monospace;width:72mm}table{width:100%}td.num{text-align:right}.marker{font-weight:bold}</style>
</head>
<body onload="window.print()">
<h2>{{.Restaurant}}</h2>
<p class="marker">{{.TriggerLabel}}</p>
{{if .AutoStatus}}<p class="marker">AUTO-STATUS ACTIVE</p>{{end}}
<p>Table: {{.Table}}<br>Customer: {{.CustomerName}}{{if .CustomerPhone}} ({{.CustomerPhone}}){{end}}<br>Printed: {{.PrintedAtDisplay}}</p>
<table>
{{range .Lines}}<tr><td>{{.Quantity}}x</td><td>{{.Name}}{{if .Portion}} [{{.Portion}}]{{end}}{{if .ItemNotes}}<br><em>{{.ItemNotes}}</em>{{end}}{{if .OrderNotes}}<br><em>{{.OrderNotes}}</em>{{end}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.LineTotal}}</td></tr>
{{end}}</table>
<p><strong>Subtotal: {{.Subtotal}}</strong></p>
</body>
</html>
`

// Renderer turns a print request into a kitchen ticket.
type Renderer struct {
	names Names
	text  *texttemplate.Template
	html  *htmltemplate.Template
}

// NewRenderer parses the ticket layouts.
func NewRenderer(names Names) (*Renderer, error) {
	if names == nil {
		return nil, fmt.Errorf("names resolver required")
	}
	text, err := texttemplate.New("ticket.txt").Parse(textLayout)
	if err != nil {
		return nil, fmt.Errorf("parse text layout: %w", err)
	}
	html, err := htmltemplate.New("ticket.html").Parse(htmlLayout)
	if err != nil {
		return nil, fmt.Errorf("parse html layout: %w", err)
	}
	return &Renderer{names: names, text: text, html: html}, nil
}

// Document resolves names and money for a print request.
func (r *Renderer) Document(req board.PrintRequest) Document {
	group := req.Group
	table := group.TableNumber
	if table == "" {
		table = "-"
	}
	lines := make([]Line, 0, len(group.Orders))
	for _, order := range group.Orders {
		lines = append(lines, Line{
			Quantity:   order.Quantity,
			Name:       r.names.ItemName(order.ProductID),
			Portion:    order.PortionSize,
			UnitPrice:  order.Price.StringFixed(2),
			LineTotal:  order.LineTotal().StringFixed(2),
			ItemNotes:  order.ItemNotes,
			OrderNotes: order.OrderNotes,
		})
	}
	return Document{
		Restaurant:    r.names.RestaurantName(group.RestaurantID),
		Table:         table,
		CustomerName:  group.CustomerName,
		CustomerPhone: group.CustomerPhone,
		PrintedAt:     req.PrintedAt,
		Trigger:       req.Trigger,
		AutoStatus:    req.AutoStatus,
		Lines:         lines,
		Subtotal:      group.Subtotal().StringFixed(2),
	}
}

// Render produces the text and HTML forms of a ticket.
func (r *Renderer) Render(req board.PrintRequest) (Rendered, error) {
	doc := r.Document(req)

	var text strings.Builder
	if err := r.text.Execute(&text, doc); err != nil {
		return Rendered{}, fmt.Errorf("render text ticket: %w", err)
	}
	var html bytes.Buffer
	if err := r.html.Execute(&html, doc); err != nil {
		return Rendered{}, fmt.Errorf("render html ticket: %w", err)
	}
	return Rendered{Document: doc, Text: text.String(), HTML: html.String()}, nil
}
