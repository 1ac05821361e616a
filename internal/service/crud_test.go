package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dashboard-service/internal/client"
	"dashboard-service/internal/entity"
	"dashboard-service/internal/notify"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeRemote struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

func newFakeRemote() *fakeRemote {
	f := &fakeRemote{status: 200, response: `{}`}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		status, response := f.status, f.response
		f.mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	return f
}

func (f *fakeRemote) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeRemote) set(status int, response string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.response = status, response
}

func newCrudService(t *testing.T) (*CrudService, *fakeRemote, *notify.Center) {
	t.Helper()
	remote := newFakeRemote()
	t.Cleanup(remote.srv.Close)
	center := notify.NewCenter()
	cli := client.New(remote.srv.URL, notify.CtxNotifier{Center: center})
	return NewCrudService(cli, center, NewEventPublisher(nil)), remote, center
}

func TestSaveCreatePostsToItemPath(t *testing.T) {
	svc, remote, center := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindClient)

	svc.OpenCreate(ctx, d)
	fieldErrs, err := svc.Save(ctx, d, map[string]string{"nombre": "Laura", "numero": "555-0101"})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	reqs := remote.all()
	require.Len(t, reqs, 1)
	require.Equal(t, http.MethodPost, reqs[0].Method)
	require.Equal(t, "/cliente", reqs[0].Path)
	require.Equal(t, "Laura", reqs[0].Body["nombre"])

	require.Nil(t, svc.Edit(ctx))
	alerts := center.Active("s1")
	require.Equal(t, "Cliente creado exitosamente", alerts[len(alerts)-1].Message)
}

func TestSaveEditPutsToItemID(t *testing.T) {
	svc, remote, center := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindClient)

	remote.set(200, `{"cliente_id": 9, "nombre": "Laura", "numero": "555-0101"}`)
	record, err := svc.OpenEdit(ctx, d, 9)
	require.NoError(t, err)
	require.Equal(t, "Laura", record.Str("nombre"))

	remote.set(200, `{}`)
	_, err = svc.Save(ctx, d, map[string]string{"nombre": "Laura", "numero": "555-0202"})
	require.NoError(t, err)

	reqs := remote.all()
	require.Len(t, reqs, 2)
	require.Equal(t, http.MethodGet, reqs[0].Method)
	require.Equal(t, "/cliente/9", reqs[0].Path)
	require.Equal(t, http.MethodPut, reqs[1].Method)
	require.Equal(t, "/cliente/9", reqs[1].Path)

	alerts := center.Active("s1")
	require.Equal(t, "Cliente actualizado exitosamente", alerts[len(alerts)-1].Message)
}

func TestSaveValidationShortCircuitsBeforeNetwork(t *testing.T) {
	svc, remote, _ := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindClient)

	svc.OpenCreate(ctx, d)
	fieldErrs, err := svc.Save(ctx, d, map[string]string{"nombre": "", "numero": ""})
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "Este campo es obligatorio", fieldErrs["nombre"])
	require.Equal(t, "Este campo es obligatorio", fieldErrs["numero"])
	require.Empty(t, remote.all())
}

func TestSavePayloadTypes(t *testing.T) {
	svc, remote, _ := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindWarehouse)

	svc.OpenCreate(ctx, d)
	_, err := svc.Save(ctx, d, map[string]string{
		"nombre_a": "Harina",
		"unidades": "25",
		"tipo":     "Insumo",
		"user_id":  "3",
	})
	require.NoError(t, err)

	body := remote.all()[0].Body
	require.Equal(t, "Harina", body["nombre_a"])
	require.Equal(t, 25.0, body["unidades"])
	require.Equal(t, 3.0, body["user_id"])
}

func TestSaveCheckboxAndOptionalFields(t *testing.T) {
	svc, remote, _ := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindWorker)

	svc.OpenCreate(ctx, d)
	_, err := svc.Save(ctx, d, map[string]string{
		"nombre_t":   "Ana",
		"apellido_p": "García",
		"apellido_m": "Luna",
		"puesto":     "Cocinera",
		"contrasena": "secreta",
		"curp":       "on",
	})
	require.NoError(t, err)

	body := remote.all()[0].Body
	require.Equal(t, true, body["curp"])
	require.Equal(t, false, body["ine"])
	require.Contains(t, body, "fecha_nacimiento")
	require.Nil(t, body["fecha_nacimiento"])
}

func TestSaveNumberRuleRejectsNegative(t *testing.T) {
	svc, remote, _ := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindWarehouse)

	svc.OpenCreate(ctx, d)
	fieldErrs, err := svc.Save(ctx, d, map[string]string{
		"nombre_a": "Harina",
		"unidades": "-2",
		"tipo":     "Insumo",
		"user_id":  "3",
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "Valor inválido", fieldErrs["unidades"])
	require.Empty(t, remote.all())
}

func TestSaveRemoteFailureKeepsFormOpen(t *testing.T) {
	svc, remote, center := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindClient)

	svc.OpenCreate(ctx, d)
	remote.set(500, `{}`)
	_, err := svc.Save(ctx, d, map[string]string{"nombre": "Laura", "numero": "555-0101"})
	require.Error(t, err)

	require.NotNil(t, svc.Edit(ctx))
	alerts := center.Active("s1")
	require.Equal(t, "Error guardando cliente", alerts[len(alerts)-1].Message)
}

func TestOpenEditFailureLeavesNoSession(t *testing.T) {
	svc, remote, center := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindTask)

	remote.set(404, `{}`)
	_, err := svc.OpenEdit(ctx, d, 5)
	require.Error(t, err)
	require.Nil(t, svc.Edit(ctx))

	alerts := center.Active("s1")
	require.Equal(t, "Error cargando datos de la tarea", alerts[len(alerts)-1].Message)
}

func TestConfirmDeletionFiresExactlyOnce(t *testing.T) {
	svc, remote, center := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindWorker)

	svc.StageDeletion(ctx, d, 4)
	require.NotNil(t, svc.Pending(ctx))

	pending, err := svc.ConfirmDeletion(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, pending.RecordID)

	pending, err = svc.ConfirmDeletion(ctx)
	require.NoError(t, err)
	require.Nil(t, pending)

	reqs := remote.all()
	require.Len(t, reqs, 1)
	require.Equal(t, http.MethodDelete, reqs[0].Method)
	require.Equal(t, "/trabajador/4", reqs[0].Path)

	alerts := center.Active("s1")
	require.Equal(t, "Trabajador eliminado exitosamente", alerts[len(alerts)-1].Message)
}

func TestCancelDeletionClearsStagedAction(t *testing.T) {
	svc, remote, _ := newCrudService(t)
	ctx := cartCtx("s1")
	d, _ := entity.ByKind(entity.KindWorker)

	svc.StageDeletion(ctx, d, 4)
	svc.CancelDeletion(ctx)
	require.Nil(t, svc.Pending(ctx))

	pending, err := svc.ConfirmDeletion(ctx)
	require.NoError(t, err)
	require.Nil(t, pending)
	require.Empty(t, remote.all())
}

func TestStagingReplacesPreviousDeletion(t *testing.T) {
	svc, remote, _ := newCrudService(t)
	ctx := cartCtx("s1")
	worker, _ := entity.ByKind(entity.KindWorker)
	task, _ := entity.ByKind(entity.KindTask)

	svc.StageDeletion(ctx, worker, 4)
	svc.StageDeletion(ctx, task, 8)

	pending, err := svc.ConfirmDeletion(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.KindTask, pending.Kind)

	reqs := remote.all()
	require.Len(t, reqs, 1)
	require.Equal(t, "/tarea/8", reqs[0].Path)
}
