// Package render builds the dashboard markup from templ components and
// hands it to handlers as ready-to-send fragments.
package render

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/a-h/templ"

	"dashboard-service/internal/entity"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/render/ui"
	"dashboard-service/internal/service"
)

// Option is one selectable entry in a reference selector.
type Option struct {
	Value    int
	Label    string
	Selected bool
}

func renderHTML(c templ.Component) template.HTML {
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		// Components only receive the view props built here; a failure is
		// a programming error, not user input.
		panic(err)
	}
	return template.HTML(buf.String())
}

// Table renders a kind's full table from a fresh collection load. An empty
// or absent list yields exactly one placeholder row spanning every column.
func Table(d entity.Descriptor, records []entity.Record) template.HTML {
	return renderHTML(ui.Table(buildTable(d, records, false)))
}

// TableError renders the table with its single inline error row, used when
// the collection fetch failed.
func TableError(d entity.Descriptor) template.HTML {
	return renderHTML(ui.Table(buildTable(d, nil, true)))
}

func buildTable(d entity.Descriptor, records []entity.Record, failed bool) ui.TableProps {
	props := ui.TableProps{
		Kind:         string(d.Kind),
		Colspan:      d.Colspan(),
		Empty:        len(records) == 0,
		Error:        failed,
		EmptyMessage: d.EmptyMessage,
	}
	for _, col := range d.Columns {
		props.Headers = append(props.Headers, col.Header)
	}
	for _, r := range records {
		row := ui.Row{Key: r.Int(d.PrimaryKey)}
		for _, col := range d.Columns {
			row.Cells = append(row.Cells, string(cell(col, r)))
		}
		props.Rows = append(props.Rows, row)
	}
	return props
}

// BuildOptions derives the option list for selectors referencing this kind.
// An empty source list leaves only the placeholder to render.
func BuildOptions(d entity.Descriptor, records []entity.Record, selected int) []Option {
	var opts []Option
	for _, r := range records {
		label := ""
		for i, f := range d.OptionLabel {
			if i > 0 {
				label += " "
			}
			label += r.Str(f)
		}
		opts = append(opts, Option{
			Value:    r.Int(d.PrimaryKey),
			Label:    label,
			Selected: selected != 0 && r.Int(d.PrimaryKey) == selected,
		})
	}
	return opts
}

func optionProps(opts []Option) []ui.Option {
	var out []ui.Option
	for _, o := range opts {
		out = append(out, ui.Option{Value: o.Value, Label: o.Label, Selected: o.Selected})
	}
	return out
}

// Select renders one populated selector element for a target id.
func Select(target entity.SelectTarget, d entity.Descriptor, records []entity.Record) template.HTML {
	return renderHTML(ui.Select(ui.SelectProps{
		ElementID: target.ElementID,
		Name:      d.PrimaryKey,
		Prompt:    d.OptionPrompt,
		Options:   optionProps(BuildOptions(d, records, 0)),
	}))
}

// MenuCards renders the menu card grid with each card's staged quantity.
// Only truthy ingredient flags produce badges, in the fixed declared order.
func MenuCards(records []entity.Record, staged map[int]int) template.HTML {
	var cards []ui.MenuCard
	for _, r := range records {
		id := r.Int("producto_id")
		qty := 1
		if q, ok := staged[id]; ok && q >= 1 {
			qty = q
		}
		cards = append(cards, ui.MenuCard{
			ID:          id,
			Name:        r.Str("nombre_m"),
			Description: r.Str("descripcion"),
			Price:       r.Decimal("precio").StringFixed(2),
			Badges:      entity.IngredientBadges(r),
			Staged:      qty,
		})
	}
	return renderHTML(ui.MenuCards(cards))
}

// Cart renders the cart panel: the empty state with checkout disabled, or
// every line with its steppers plus the recomputed totals.
func Cart(view *service.CartView) template.HTML {
	props := ui.CartProps{
		TotalItems:      view.TotalItems,
		TotalPrice:      view.TotalPrice.StringFixed(2),
		CheckoutEnabled: view.CheckoutEnabled,
	}
	for _, line := range view.Lines {
		props.Lines = append(props.Lines, ui.CartLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Quantity:  line.Quantity,
		})
	}
	return renderHTML(ui.Cart(props))
}

// ChatThread renders the message history. Timestamps reflect render time,
// not send time, matching the original widget.
func ChatThread(messages []entity.ChatMessage, typing bool, now time.Time) template.HTML {
	props := ui.ChatProps{Typing: typing, Time: now.Format("15:04")}
	for _, m := range messages {
		props.Messages = append(props.Messages, ui.ChatMessage{Sender: m.Sender, Body: m.Body})
	}
	return renderHTML(ui.Chat(props))
}

// Notifications renders the stacked transient alerts, oldest first.
func Notifications(list []notify.Notification) template.HTML {
	return renderHTML(ui.Notifications(notificationProps(list)))
}

// FieldView pairs a field spec with its current value and validation state.
type FieldView struct {
	Spec    entity.Field
	Value   string
	Checked bool
	Error   string
	Prompt  string
	Options []Option
}

// FormView is the modal form for one kind, in create or edit mode.
type FormView struct {
	Kind   entity.Kind
	Prefix string
	Title  string
	Fields []FieldView
}

// Form renders the modal form body.
func Form(view FormView) template.HTML {
	props := ui.FormProps{
		Kind:   string(view.Kind),
		Prefix: view.Prefix,
		Title:  view.Title,
	}
	for _, f := range view.Fields {
		props.Fields = append(props.Fields, ui.FormField{
			Input:    string(f.Spec.Input),
			Name:     f.Spec.Name,
			Label:    f.Spec.Label,
			Required: f.Spec.Required,
			Value:    f.Value,
			Checked:  f.Checked,
			Error:    f.Error,
			Prompt:   f.Prompt,
			Options:  optionProps(f.Options),
		})
	}
	return renderHTML(ui.Form(props))
}

// ConfirmDialog renders the delete confirmation for the staged deletion.
func ConfirmDialog(d entity.Descriptor, recordID int) template.HTML {
	article := "el"
	if d.Feminine {
		article = "la"
	}
	return renderHTML(ui.Confirm(ui.ConfirmProps{
		Article:  article,
		Singular: d.Singular,
		RecordID: recordID,
	}))
}

// Stat is one dashboard summary card.
type Stat struct {
	Label string
	Value string
}

// Stats renders a row of dashboard summary cards.
func Stats(stats []Stat) template.HTML {
	var props []ui.Stat
	for _, s := range stats {
		props = append(props, ui.Stat{Label: s.Label, Value: s.Value})
	}
	return renderHTML(ui.Stats(props))
}

// NavItem is one sidebar entry.
type NavItem struct {
	ID     string
	Title  string
	Active bool
}

// Section is one content section of the page.
type Section struct {
	ID     string
	Title  string
	Active bool
	Body   template.HTML
}

// Page renders the full dashboard page: sidebar, notification stack, every
// section with the requested one active, and the chat widget.
func Page(title string, nav []NavItem, sections []Section, alerts []notify.Notification, chat template.HTML) template.HTML {
	props := ui.PageProps{
		Title:         title,
		Notifications: notificationProps(alerts),
		Chat:          string(chat),
	}
	for _, n := range nav {
		props.Nav = append(props.Nav, ui.NavItem{ID: n.ID, Title: n.Title, Active: n.Active})
	}
	for _, s := range sections {
		props.Sections = append(props.Sections, ui.Section{
			ID:     s.ID,
			Title:  s.Title,
			Active: s.Active,
			Body:   string(s.Body),
		})
	}
	return renderHTML(ui.Page(props))
}

func notificationProps(alerts []notify.Notification) []ui.Notification {
	var out []ui.Notification
	for _, n := range alerts {
		class := string(n.Kind)
		if n.Kind == notify.Error {
			class = "danger"
		}
		out = append(out, ui.Notification{ID: n.ID, Class: class, Message: n.Message})
	}
	return out
}
