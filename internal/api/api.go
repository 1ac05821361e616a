package api

import (
	"context"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"dashboard-service/internal/entity"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/render"
	"dashboard-service/internal/service"
	"dashboard-service/internal/session"
)

// DashboardHandler serves the admin pages and the entity CRUD cycle for all
// ten kinds, driven entirely by the descriptors.
type DashboardHandler struct {
	crud   *service.CrudService
	cart   *service.CartService
	chat   *service.ChatService
	center *notify.Center
}

// NewDashboardHandler creates a new instance of DashboardHandler.
func NewDashboardHandler(crud *service.CrudService, cart *service.CartService, chat *service.ChatService, center *notify.Center) *DashboardHandler {
	return &DashboardHandler{crud: crud, cart: cart, chat: chat, center: center}
}

// Home renders the full dashboard --> /
func (h *DashboardHandler) Home(c echo.Context) error {
	return h.page(c, entity.KindWorker)
}

// Section renders the dashboard with one section active --> /sections/:section
func (h *DashboardHandler) Section(c echo.Context) error {
	d, ok := entity.ByKind(entity.Kind(c.Param("section")))
	if !ok {
		return c.JSON(404, map[string]string{"error": "Unknown section"})
	}
	return h.page(c, d.Kind)
}

type loadResult struct {
	kind    entity.Kind
	records []entity.Record
	err     error
}

// page fetches every collection concurrently and renders the shell. A
// failed fetch degrades only its own section to the inline error row.
func (h *DashboardHandler) page(c echo.Context, active entity.Kind) error {
	ctx := c.Request().Context()
	descriptors := entity.Descriptors()

	results := make(chan loadResult, len(descriptors))
	for _, d := range descriptors {
		go func(d entity.Descriptor) {
			records, err := h.crud.Load(ctx, d)
			results <- loadResult{kind: d.Kind, records: records, err: err}
		}(d)
	}
	loaded := map[entity.Kind]loadResult{}
	for range descriptors {
		r := <-results
		loaded[r.kind] = r
	}

	staged, err := h.cart.Staged(ctx)
	if err != nil {
		staged = nil
	}
	pending := h.crud.Pending(ctx)

	var nav []render.NavItem
	var sections []render.Section
	for _, d := range descriptors {
		r := loaded[d.Kind]
		var body template.HTML
		if r.err != nil {
			body = render.TableError(d)
		} else {
			body = render.Table(d, r.records)
			switch d.Kind {
			case entity.KindWorker:
				body = render.Stats(workerStatCards(service.WorkersDashboard(r.records))) + body
			case entity.KindMenu:
				body = render.Stats(menuStatCards(service.MenuDashboard(r.records))) +
					render.MenuCards(r.records, staged) + h.cartPanel(ctx) + body
			}
		}
		if pending != nil && pending.Kind == d.Kind {
			body += render.ConfirmDialog(d, pending.RecordID)
		}
		nav = append(nav, render.NavItem{ID: string(d.Kind), Title: d.Title, Active: d.Kind == active})
		sections = append(sections, render.Section{ID: string(d.Kind), Title: d.Title, Active: d.Kind == active, Body: body})
	}

	messages, typing := h.chat.Thread(ctx)
	alerts := h.center.Active(session.IDFromContext(ctx))
	page := render.Page("Panel de Administración", nav, sections, alerts,
		render.ChatThread(messages, typing, time.Now()))
	return c.HTML(200, string(page))
}

func (h *DashboardHandler) cartPanel(ctx context.Context) template.HTML {
	view, err := h.cart.View(ctx)
	if err != nil {
		return ""
	}
	return render.Cart(view)
}

// TablePartial re-renders one kind's table from a fresh load
// --> /partials/:kind/table
func (h *DashboardHandler) TablePartial(c echo.Context) error {
	d, ok := entity.ByKind(entity.Kind(c.Param("kind")))
	if !ok {
		return c.JSON(404, map[string]string{"error": "Unknown section"})
	}
	records, err := h.crud.Load(c.Request().Context(), d)
	if err != nil {
		return c.HTML(200, string(render.TableError(d)))
	}
	return c.HTML(200, string(render.Table(d, records)))
}

// OptionsPartial renders the selectors this kind populates
// --> /partials/:kind/options
func (h *DashboardHandler) OptionsPartial(c echo.Context) error {
	d, ok := entity.ByKind(entity.Kind(c.Param("kind")))
	if !ok {
		return c.JSON(404, map[string]string{"error": "Unknown section"})
	}
	records, err := h.crud.Load(c.Request().Context(), d)
	if err != nil {
		records = nil
	}
	var out template.HTML
	for _, target := range d.SelectTargets {
		out += render.Select(target, d, records)
	}
	return c.HTML(200, string(out))
}

// FormPartial opens the modal form, in edit mode when ?id= is present
// --> /partials/:kind/form
func (h *DashboardHandler) FormPartial(c echo.Context) error {
	d, ok := entity.ByKind(entity.Kind(c.Param("kind")))
	if !ok {
		return c.JSON(404, map[string]string{"error": "Unknown section"})
	}
	ctx := c.Request().Context()

	var record entity.Record
	if raw := c.QueryParam("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "Invalid ID"})
		}
		record, err = h.crud.OpenEdit(ctx, d, id)
		if err != nil {
			// the form never opens with partial data; the section page
			// carries the error notification
			return c.Redirect(303, "/sections/"+string(d.Kind))
		}
	} else {
		h.crud.OpenCreate(ctx, d)
	}

	return h.renderForm(c, d, record, nil, nil, 200)
}

// Save validates and persists the open form --> /entities/:kind
func (h *DashboardHandler) Save(c echo.Context) error {
	d, ok := entity.ByKind(entity.Kind(c.Param("kind")))
	if !ok {
		return c.JSON(404, map[string]string{"error": "Unknown section"})
	}
	ctx := c.Request().Context()

	values := map[string]string{}
	for _, f := range d.Fields {
		values[f.Name] = c.FormValue(f.Name)
	}

	fieldErrs, err := h.crud.Save(ctx, d, values)
	if errors.Is(err, service.ErrValidation) {
		return h.renderForm(c, d, nil, values, fieldErrs, 422)
	}
	if err != nil {
		// remote failure keeps the form open with the submitted values
		return h.renderForm(c, d, nil, values, nil, 200)
	}
	return c.Redirect(303, "/sections/"+string(d.Kind))
}

// CloseForm abandons the open form --> /forms/close
func (h *DashboardHandler) CloseForm(c echo.Context) error {
	h.crud.CloseForm(c.Request().Context())
	return redirectBack(c, "/")
}

// StageDelete parks a delete behind the confirmation dialog
// --> /entities/:kind/:id/delete
func (h *DashboardHandler) StageDelete(c echo.Context) error {
	d, ok := entity.ByKind(entity.Kind(c.Param("kind")))
	if !ok {
		return c.JSON(404, map[string]string{"error": "Unknown section"})
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	h.crud.StageDeletion(c.Request().Context(), d, id)
	return c.Redirect(303, "/sections/"+string(d.Kind))
}

// ConfirmDelete fires the staged deletion --> /deletions/confirm
func (h *DashboardHandler) ConfirmDelete(c echo.Context) error {
	pending, err := h.crud.ConfirmDeletion(c.Request().Context())
	if err != nil || pending == nil {
		return redirectBack(c, "/")
	}
	return c.Redirect(303, "/sections/"+string(pending.Kind))
}

// CancelDelete clears the staged deletion --> /deletions/cancel
func (h *DashboardHandler) CancelDelete(c echo.Context) error {
	h.crud.CancelDeletion(c.Request().Context())
	return redirectBack(c, "/")
}

// DismissNotification drops one alert early --> /notifications/:id/dismiss
func (h *DashboardHandler) DismissNotification(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}
	h.center.Dismiss(session.IDFromContext(c.Request().Context()), id)
	return redirectBack(c, "/")
}

// renderForm builds the field views and writes the form with the session's
// current notifications on top.
func (h *DashboardHandler) renderForm(c echo.Context, d entity.Descriptor, record entity.Record, values, fieldErrs map[string]string, status int) error {
	ctx := c.Request().Context()

	title := "Agregar " + d.Singular
	if edit := h.crud.Edit(ctx); edit != nil && edit.RecordID != nil {
		title = "Editar " + d.Singular
	}

	view := render.FormView{
		Kind:   d.Kind,
		Prefix: strings.TrimPrefix(d.ItemPath, "/"),
		Title:  title,
	}
	for _, f := range d.Fields {
		fv := render.FieldView{Spec: f, Error: fieldErrs[f.Name]}
		switch {
		case values != nil:
			fv.Value = values[f.Name]
			fv.Checked = values[f.Name] == "on" || values[f.Name] == "true"
		case record != nil:
			fv.Value = record.Str(f.Name)
			fv.Checked = record.Bool(f.Name)
		}
		if f.Input == entity.InputSelect {
			source, ok := entity.ByKind(f.Source)
			if ok {
				fv.Prompt = source.OptionPrompt
				selected, _ := strconv.Atoi(fv.Value)
				options, err := h.crud.Load(ctx, source)
				if err != nil {
					options = nil
				}
				fv.Options = render.BuildOptions(source, options, selected)
			}
		}
		view.Fields = append(view.Fields, fv)
	}

	alerts := render.Notifications(h.center.Active(session.IDFromContext(ctx)))
	return c.HTML(status, string(alerts+render.Form(view)))
}

func redirectBack(c echo.Context, fallback string) error {
	if ref := c.Request().Referer(); ref != "" {
		return c.Redirect(303, ref)
	}
	return c.Redirect(303, fallback)
}

func workerStatCards(stats service.WorkerStats) []render.Stat {
	top := stats.TopPosition
	if top == "" {
		top = "N/A"
	}
	return []render.Stat{
		{Label: "Total Trabajadores", Value: strconv.Itoa(stats.Total)},
		{Label: "Activos", Value: strconv.Itoa(stats.Active)},
		{Label: "Puesto Más Común", Value: top},
		{Label: "Documentos Completos", Value: strconv.Itoa(stats.DocumentsComplete)},
	}
}

func menuStatCards(stats service.MenuStats) []render.Stat {
	popular := stats.MostPopular
	if popular == "" {
		popular = "N/A"
	}
	return []render.Stat{
		{Label: "Total Productos", Value: strconv.Itoa(stats.Total)},
		{Label: "Precio Promedio", Value: "$" + stats.AveragePrice.StringFixed(2)},
		{Label: "Más Popular", Value: popular},
		{Label: "Especialidades", Value: strconv.Itoa(stats.Specialties)},
	}
}
