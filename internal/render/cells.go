package render

import (
	"fmt"
	"html/template"
	"strings"

	"dashboard-service/internal/entity"
)

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

// cell renders one table cell body for a record according to the column's
// format. Everything dynamic is escaped before any markup is assembled.
func cell(col entity.Column, r entity.Record) template.HTML {
	switch col.Format {
	case entity.FormatJoin:
		parts := make([]string, 0, len(col.Fields))
		for _, f := range col.Fields {
			parts = append(parts, esc(r.Str(f)))
		}
		return template.HTML(strings.Join(parts, " "))

	case entity.FormatMoney:
		return template.HTML("$" + esc(r.Str(col.Field)))

	case entity.FormatBadge:
		return template.HTML(fmt.Sprintf(`<span class="badge bg-secondary">%s</span>`, esc(r.Str(col.Field))))

	case entity.FormatStatus:
		return statusCell(col, r)

	case entity.FormatDocuments:
		var badges []string
		for _, doc := range col.Docs {
			if r.Bool(doc.Field) {
				badges = append(badges, fmt.Sprintf(`<span class="badge bg-success">%s</span>`, esc(doc.Label)))
			}
		}
		return template.HTML(fmt.Sprintf(`<div class="d-flex flex-wrap gap-1">%s</div>`, strings.Join(badges, "")))

	case entity.FormatWeekday:
		day := r.Str(col.Field)
		if day == "" || day == "false" {
			day = "Descanso"
		}
		return template.HTML(esc(day))

	case entity.FormatIngredient:
		return ingredientCell(r)

	case entity.FormatClientRef:
		return template.HTML("Cliente #" + esc(r.Str(col.Field)))

	default:
		v := r.Str(col.Field)
		if v == "" && col.Fallback != "" {
			v = col.Fallback
		}
		return template.HTML(esc(v))
	}
}

func statusCell(col entity.Column, r entity.Record) template.HTML {
	spec := col.Status
	ok := r.Bool(col.Field)
	if spec.Numeric {
		ok = r.Int(col.Field) > spec.Threshold
	}
	label, class := spec.FalseLabel, spec.FalseClass
	if ok {
		label, class = spec.TrueLabel, spec.TrueClass
	}
	return template.HTML(fmt.Sprintf(`<span class="status-badge %s">%s</span>`, esc(class), esc(label)))
}

// ingredientCell shows the first three ingredient badges plus a "+N"
// overflow chip, the same truncation the menu table always had.
func ingredientCell(r entity.Record) template.HTML {
	labels := entity.IngredientBadges(r)
	shown := labels
	if len(shown) > 3 {
		shown = shown[:3]
	}
	var b strings.Builder
	b.WriteString(`<div class="d-flex flex-wrap gap-1">`)
	for _, label := range shown {
		fmt.Fprintf(&b, `<span class="badge bg-secondary">%s</span>`, esc(label))
	}
	if extra := len(labels) - len(shown); extra > 0 {
		fmt.Fprintf(&b, `<span class="badge bg-light text-dark">+%d</span>`, extra)
	}
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}
