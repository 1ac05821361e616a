package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"dashboard-service/internal/client"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/service"
	"dashboard-service/internal/session"
)

type fixture struct {
	handler *DashboardHandler
	cart    *CartHandler
	chat    *ChatHandler
	auth    *AuthHandler
	center  *notify.Center
	echo    *echo.Echo

	mu        sync.Mutex
	requests  []string
	failPaths map[string]bool
}

// newFixture wires the handlers against a fake remote API that serves empty
// collections and records every request as "METHOD path". Paths marked with
// fail answer 500 instead.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{echo: echo.New(), center: notify.NewCenter(), failPaths: map[string]bool{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		failed := f.failPaths[r.URL.Path]
		f.mu.Unlock()
		if failed {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.Method == http.MethodGet && !strings.Contains(strings.TrimPrefix(r.URL.Path, "/"), "/") {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	remote := client.New(srv.URL, notify.CtxNotifier{Center: f.center})
	events := service.NewEventPublisher(nil)
	crud := service.NewCrudService(remote, f.center, events)
	cart := service.NewCartService(service.NewMemoryCartStore(), f.center, remote, events)
	chat := service.NewChatService(remote)

	f.handler = NewDashboardHandler(crud, cart, chat, f.center)
	f.cart = NewCartHandler(cart)
	f.chat = NewChatHandler(chat)
	f.auth = NewAuthHandler(f.center)
	return f
}

func (f *fixture) fail(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPaths[path] = true
}

func (f *fixture) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fixture) request(method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(session.WithID(req.Context(), "s1"))
	rec := httptest.NewRecorder()
	return f.echo.NewContext(req, rec), rec
}

func TestHomeRendersEverySection(t *testing.T) {
	f := newFixture(t)
	c, rec := f.request(http.MethodGet, "/", nil)

	require.NoError(t, f.handler.Home(c))
	require.Equal(t, 200, rec.Code)

	html := rec.Body.String()
	for _, title := range []string{"Trabajadores", "Almacén", "Gastos", "Asistencias", "Pagos", "Horarios", "Tareas", "Clientes", "Menú", "Ventas"} {
		require.Contains(t, html, title)
	}
	require.Contains(t, html, "No hay trabajadores registrados")
	require.Contains(t, html, "Tu carrito está vacío")
	require.Contains(t, html, `id="chatWidget"`)

	reqs := f.recorded()
	require.Len(t, reqs, 10, "one fetch per collection")
}

func TestFailedCollectionDegradesOnlyItsSection(t *testing.T) {
	f := newFixture(t)
	f.fail("/gastos")
	c, rec := f.request(http.MethodGet, "/", nil)

	require.NoError(t, f.handler.Home(c))
	require.Equal(t, 200, rec.Code)

	html := rec.Body.String()
	require.Equal(t, 1, strings.Count(html, "Error cargando datos"), "only the expenses table degrades")
	require.NotContains(t, html, "No hay gastos registrados")
	for _, msg := range []string{
		"No hay trabajadores registrados",
		"No hay productos en almacén",
		"No hay asistencias registradas",
		"No hay pagos registrados",
		"No hay horarios registrados",
		"No hay tareas registradas",
		"No hay clientes registrados",
		"No hay productos en el menú",
		"No hay ventas registradas",
	} {
		require.Contains(t, html, msg)
	}
	require.Contains(t, html, "alert-danger")
	require.Contains(t, html, "Error: HTTP status 500")
	require.Len(t, f.recorded(), 10, "a failed collection does not stop the other fetches")
}

func TestSectionRejectsUnknownKind(t *testing.T) {
	f := newFixture(t)
	c, rec := f.request(http.MethodGet, "/sections/nada", nil)
	c.SetParamNames("section")
	c.SetParamValues("nada")

	require.NoError(t, f.handler.Section(c))
	require.Equal(t, 404, rec.Code)
}

func TestSaveValidationReRendersFormWith422(t *testing.T) {
	f := newFixture(t)
	c, rec := f.request(http.MethodPost, "/entities/clientes", url.Values{"nombre": {""}, "numero": {""}})
	c.SetParamNames("kind")
	c.SetParamValues("clientes")

	require.NoError(t, f.handler.Save(c))
	require.Equal(t, 422, rec.Code)
	require.Contains(t, rec.Body.String(), "Este campo es obligatorio")
	require.Empty(t, f.recorded(), "validation failures never reach the network")
}

func TestSaveRedirectsToSectionOnSuccess(t *testing.T) {
	f := newFixture(t)
	c, rec := f.request(http.MethodPost, "/entities/clientes", url.Values{"nombre": {"Laura"}, "numero": {"555-0101"}})
	c.SetParamNames("kind")
	c.SetParamValues("clientes")

	require.NoError(t, f.handler.Save(c))
	require.Equal(t, 303, rec.Code)
	require.Equal(t, "/sections/clientes", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, []string{"POST /cliente"}, f.recorded())
}

func TestDeleteFlowStagesThenConfirmsOnce(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/entities/trabajadores/4/delete", nil)
	c.SetParamNames("kind", "id")
	c.SetParamValues("trabajadores", "4")
	require.NoError(t, f.handler.StageDelete(c))
	require.Equal(t, 303, rec.Code)
	require.Empty(t, f.recorded(), "staging alone issues no request")

	c, rec = f.request(http.MethodPost, "/deletions/confirm", nil)
	require.NoError(t, f.handler.ConfirmDelete(c))
	require.Equal(t, 303, rec.Code)
	require.Equal(t, "/sections/trabajadores", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, []string{"DELETE /trabajador/4"}, f.recorded())

	c, rec = f.request(http.MethodPost, "/deletions/confirm", nil)
	require.NoError(t, f.handler.ConfirmDelete(c))
	require.Equal(t, []string{"DELETE /trabajador/4"}, f.recorded(), "second confirm finds nothing staged")
}

func TestStagedDeletionShowsConfirmDialogOnPage(t *testing.T) {
	f := newFixture(t)

	c, _ := f.request(http.MethodPost, "/entities/tareas/8/delete", nil)
	c.SetParamNames("kind", "id")
	c.SetParamValues("tareas", "8")
	require.NoError(t, f.handler.StageDelete(c))

	c, rec := f.request(http.MethodGet, "/sections/tareas", nil)
	c.SetParamNames("section")
	c.SetParamValues("tareas")
	require.NoError(t, f.handler.Section(c))
	require.Contains(t, rec.Body.String(), "¿Seguro que deseas eliminar la Tarea #8?")
}

func TestFormPartialOpensCreateMode(t *testing.T) {
	f := newFixture(t)
	c, rec := f.request(http.MethodGet, "/partials/clientes/form", nil)
	c.SetParamNames("kind")
	c.SetParamValues("clientes")

	require.NoError(t, f.handler.FormPartial(c))
	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), "Agregar Cliente")
}

func TestCartAddAndPartial(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/cart/items", url.Values{
		"producto_id": {"7"},
		"nombre":      {"Taco de Pastor"},
		"precio":      {"15.00"},
		"descripcion": {"con piña"},
	})
	require.NoError(t, f.cart.Add(c))
	require.Equal(t, 303, rec.Code)

	c, rec = f.request(http.MethodGet, "/partials/cart", nil)
	require.NoError(t, f.cart.Partial(c))
	require.Contains(t, rec.Body.String(), "Taco de Pastor")
	require.Contains(t, rec.Body.String(), `id="cartTotal">15.00</span>`)
}

func TestCheckoutRedirectsToSales(t *testing.T) {
	f := newFixture(t)

	c, _ := f.request(http.MethodPost, "/cart/items", url.Values{
		"producto_id": {"7"},
		"nombre":      {"Taco de Pastor"},
		"precio":      {"15.00"},
	})
	require.NoError(t, f.cart.Add(c))

	c, rec := f.request(http.MethodPost, "/cart/checkout", url.Values{})
	require.NoError(t, f.cart.Checkout(c))
	require.Equal(t, 303, rec.Code)
	require.Equal(t, "/sections/ventas", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, []string{"POST /venta"}, f.recorded())
}

func TestChatSendAndPartial(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/chat/messages", url.Values{"message": {"hola"}})
	require.NoError(t, f.chat.Send(c))
	require.Equal(t, 303, rec.Code)

	c, rec = f.request(http.MethodGet, "/partials/chat", nil)
	require.NoError(t, f.chat.Partial(c))
	require.Contains(t, rec.Body.String(), "hola")
	require.Contains(t, rec.Body.String(), "bot-message")
}

func TestLoginStub(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/login", url.Values{"email": {"admin@tacos.mx"}, "password": {"x"}})
	require.NoError(t, f.auth.Login(c))
	require.Equal(t, 303, rec.Code)
	alerts := f.center.Active("s1")
	require.Equal(t, "Sesión iniciada correctamente", alerts[len(alerts)-1].Message)

	c, _ = f.request(http.MethodPost, "/login", url.Values{"email": {""}, "password": {""}})
	require.NoError(t, f.auth.Login(c))
	alerts = f.center.Active("s1")
	require.Equal(t, "Credenciales inválidas", alerts[len(alerts)-1].Message)
	require.Equal(t, notify.Error, alerts[len(alerts)-1].Kind)
}

func TestDismissNotification(t *testing.T) {
	f := newFixture(t)
	f.center.Push("s1", notify.Success, "listo")

	c, rec := f.request(http.MethodPost, "/notifications/1/dismiss", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, f.handler.DismissNotification(c))
	require.Equal(t, 303, rec.Code)
	require.Empty(t, f.center.Active("s1"))
}
