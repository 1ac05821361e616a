package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dashboard-service/internal/entity"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/service"
)

func TestEmptyTableRendersSinglePlaceholderRow(t *testing.T) {
	d, _ := entity.ByKind(entity.KindWorker)
	html := string(Table(d, nil))

	require.Contains(t, html, fmt.Sprintf(`colspan="%d"`, d.Colspan()))
	require.Contains(t, html, "No hay trabajadores registrados")
	require.Equal(t, 1, strings.Count(html, "<tr>")-1) // header row + placeholder
}

func TestTableErrorRendersInlineErrorRow(t *testing.T) {
	d, _ := entity.ByKind(entity.KindSale)
	html := string(TableError(d))

	require.Contains(t, html, "Error cargando datos")
	require.Contains(t, html, "text-danger")
	require.Contains(t, html, fmt.Sprintf(`colspan="%d"`, d.Colspan()))
}

func TestTableRowsCarryEditAndDeleteActions(t *testing.T) {
	d, _ := entity.ByKind(entity.KindClient)
	html := string(Table(d, []entity.Record{
		{"cliente_id": float64(5), "nombre": "Laura", "numero": "555-0101"},
	}))

	require.Contains(t, html, `href="/partials/clientes/form?id=5"`)
	require.Contains(t, html, `action="/entities/clientes/5/delete"`)
	require.Contains(t, html, "Laura")
}

func TestTableEscapesRecordValues(t *testing.T) {
	d, _ := entity.ByKind(entity.KindClient)
	html := string(Table(d, []entity.Record{
		{"cliente_id": float64(1), "nombre": "<script>alert(1)</script>", "numero": "1"},
	}))

	require.NotContains(t, html, "<script>")
	require.Contains(t, html, "&lt;script&gt;")
}

func TestScheduleFallsBackToDescanso(t *testing.T) {
	d, _ := entity.ByKind(entity.KindSchedule)
	html := string(Table(d, []entity.Record{
		{"user": float64(1), "nombre_t": "Ana", "lunes": "09:00-17:00"},
	}))

	require.Contains(t, html, "09:00-17:00")
	require.Contains(t, html, "Descanso")
}

func TestWarehouseStatusThreshold(t *testing.T) {
	d, _ := entity.ByKind(entity.KindWarehouse)
	html := string(Table(d, []entity.Record{
		{"producto_id": float64(1), "nombre_a": "Harina", "unidades": float64(25)},
		{"producto_id": float64(2), "nombre_a": "Sal", "unidades": float64(10)},
	}))

	require.Contains(t, html, "Disponible")
	require.Contains(t, html, "Bajo")
}

func TestMenuIngredientOverflowChip(t *testing.T) {
	d, _ := entity.ByKind(entity.KindMenu)
	html := string(Table(d, []entity.Record{
		{
			"producto_id": float64(1), "nombre_m": "Especial",
			"tortilla_maiz": true, "carne_res": true, "aguacate": true,
			"chorizo_argentino": true, "cecina": true,
		},
	}))

	require.Contains(t, html, "+2")
	require.Equal(t, 3, strings.Count(html, `badge bg-secondary`))
}

func TestBuildOptionsJoinsLabelFields(t *testing.T) {
	d, _ := entity.ByKind(entity.KindWorker)
	opts := BuildOptions(d, []entity.Record{
		{"user_id": float64(3), "nombre_t": "Ana", "apellido_p": "García"},
	}, 3)

	require.Len(t, opts, 1)
	require.Equal(t, 3, opts[0].Value)
	require.Equal(t, "Ana García", opts[0].Label)
	require.True(t, opts[0].Selected)
}

func TestSelectRendersPlaceholderOnlyWhenEmpty(t *testing.T) {
	d, _ := entity.ByKind(entity.KindClient)
	html := string(Select(entity.SelectTarget{ElementID: "venta_cliente_id"}, d, nil))

	require.Contains(t, html, `id="venta_cliente_id"`)
	require.Contains(t, html, "Seleccionar cliente")
	require.Equal(t, 1, strings.Count(html, "<option"))
}

func TestMenuCardsShowStagedQuantityAndBadges(t *testing.T) {
	html := string(MenuCards([]entity.Record{
		{"producto_id": float64(7), "nombre_m": "Taco de Pastor", "precio": float64(15), "descripcion": "con piña", "tortilla_maiz": true},
	}, map[int]int{7: 3}))

	require.Contains(t, html, "Taco de Pastor")
	require.Contains(t, html, "$15.00")
	require.Contains(t, html, `id="qty-7">3</span>`)
	require.Contains(t, html, "Tortilla Maíz")
	require.Contains(t, html, `action="/cart/stage/7/increase"`)
}

func TestCartEmptyStateDisablesCheckout(t *testing.T) {
	html := string(Cart(&service.CartView{}))

	require.Contains(t, html, "Tu carrito está vacío")
	require.Contains(t, html, "disabled")
}

func TestCartRendersLinesAndTotals(t *testing.T) {
	view := &service.CartView{
		Lines: []entity.CartLine{
			{ProductID: 7, Name: "Taco de Pastor", UnitPrice: decimal.RequireFromString("15.00"), Quantity: 3},
		},
		TotalItems:      3,
		TotalPrice:      decimal.RequireFromString("45.00"),
		CheckoutEnabled: true,
	}
	html := string(Cart(view))

	require.Contains(t, html, "Taco de Pastor")
	require.Contains(t, html, "$15.00 c/u")
	require.Contains(t, html, `id="cartTotal">45.00</span>`)
	require.Contains(t, html, `action="/cart/items/7/remove"`)
	require.NotContains(t, html, "disabled")
}

func TestChatThreadRendersBubblesAndTyping(t *testing.T) {
	now := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	html := string(ChatThread([]entity.ChatMessage{
		{Sender: "user", Body: "hola"},
		{Sender: "bot", Body: "Hola, ¿en qué puedo ayudarte?"},
	}, true, now))

	require.Contains(t, html, "user-message")
	require.Contains(t, html, "bot-message")
	require.Contains(t, html, "14:30")
	require.Contains(t, html, "typing-indicator")
}

func TestNotificationsMapErrorToDangerClass(t *testing.T) {
	center := notify.NewCenter()
	center.Push("s1", notify.Error, "Error: HTTP status 500")
	center.Push("s1", notify.Success, "Listo")

	html := string(Notifications(center.Active("s1")))
	require.Contains(t, html, "alert-danger")
	require.Contains(t, html, "alert-success")
	require.Contains(t, html, "Error: HTTP status 500")
}

func TestFormRendersFieldsAndErrors(t *testing.T) {
	d, _ := entity.ByKind(entity.KindClient)
	html := string(Form(FormView{
		Kind:   d.Kind,
		Prefix: "cliente",
		Title:  "Agregar Cliente",
		Fields: []FieldView{
			{Spec: d.Fields[0], Value: "Laura"},
			{Spec: d.Fields[1], Error: "Este campo es obligatorio"},
		},
	}))

	require.Contains(t, html, `action="/entities/clientes"`)
	require.Contains(t, html, `value="Laura"`)
	require.Contains(t, html, `id="cliente_nombre"`)
	require.Contains(t, html, "Este campo es obligatorio")
	require.Contains(t, html, `formaction="/forms/close"`)
}

func TestConfirmDialogUsesGenderedArticle(t *testing.T) {
	task, _ := entity.ByKind(entity.KindTask)
	html := string(ConfirmDialog(task, 8))
	require.Contains(t, html, "¿Seguro que deseas eliminar la Tarea #8?")

	worker, _ := entity.ByKind(entity.KindWorker)
	html = string(ConfirmDialog(worker, 4))
	require.Contains(t, html, "eliminar el Trabajador #4")
	require.Contains(t, html, `action="/deletions/confirm"`)
}

func TestPageMarksActiveSection(t *testing.T) {
	html := string(Page("Panel de Administración",
		[]NavItem{{ID: "trabajadores", Title: "Trabajadores", Active: true}, {ID: "menu", Title: "Menú"}},
		[]Section{{ID: "trabajadores", Title: "Trabajadores", Active: true, Body: "<table></table>"}},
		nil, ""))

	require.Contains(t, html, `sidebar-link active`)
	require.Contains(t, html, `href="/sections/menu"`)
	require.Contains(t, html, `content-section active`)
	require.Contains(t, html, "<table></table>")
}
