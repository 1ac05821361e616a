package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) RequestFailed(ctx context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func TestListDecodesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/trabajadores", r.URL.Path)
		w.Write([]byte(`[{"user_id": 1, "nombre_t": "Ana"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	records, err := c.List(context.Background(), "/trabajadores")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Ana", records[0].Str("nombre_t"))
}

func TestNonOKStatusNotifiesAndReturnsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	c := New(srv.URL, notifier)
	_, err := c.List(context.Background(), "/gastos")

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	require.Equal(t, 500, failure.Status)
	require.Equal(t, "Error: HTTP status 500", failure.Message)
	require.Equal(t, []string{"Error: HTTP status 500"}, notifier.all())
}

func TestEmptyBodyDecodesAsEmptyObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	raw, err := c.Do(context.Background(), http.MethodDelete, "/trabajador/3", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(raw))
}

func TestMalformedBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	c := New(srv.URL, notifier)
	_, err := c.Get(context.Background(), "/trabajador/3")
	require.Error(t, err)
	require.Len(t, notifier.all(), 1)
}

func TestUnreachableHostNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	c := New("http://127.0.0.1:1", notifier)
	_, err := c.List(context.Background(), "/menu")

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	require.Equal(t, 0, failure.Status)
	require.Len(t, notifier.all(), 1)
}

func TestPostSendsJSONContentType(t *testing.T) {
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Post(context.Background(), "/venta", map[string]any{"precio": 45.0})
	require.NoError(t, err)
	require.Equal(t, "application/json", contentType)
}
