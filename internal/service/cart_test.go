package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dashboard-service/internal/client"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/session"
)

func cartCtx(sid string) context.Context {
	return session.WithID(context.Background(), sid)
}

func newCartService(t *testing.T, remote *client.Client) (*CartService, *notify.Center) {
	t.Helper()
	center := notify.NewCenter()
	return NewCartService(NewMemoryCartStore(), center, remote, NewEventPublisher(nil)), center
}

func TestAddMergesByProductAndResetsStaged(t *testing.T) {
	svc, center := newCartService(t, nil)
	ctx := cartCtx("s1")
	price := decimal.RequireFromString("15.00")

	qty, err := svc.StageQuantity(ctx, 7, 1)
	require.NoError(t, err)
	require.Equal(t, 2, qty)
	require.NoError(t, svc.Add(ctx, 7, "Taco de Pastor", price, "con piña"))
	require.NoError(t, svc.Add(ctx, 7, "Taco de Pastor", price, "con piña"))

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 3, view.Lines[0].Quantity)
	require.Equal(t, 3, view.TotalItems)
	require.True(t, view.TotalPrice.Equal(decimal.RequireFromString("45.00")))
	require.True(t, view.CheckoutEnabled)

	staged, err := svc.Staged(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, staged[7])

	alerts := center.Active("s1")
	require.Len(t, alerts, 2)
	require.Equal(t, "Taco de Pastor agregado al carrito", alerts[0].Message)
}

func TestStageQuantityClampsAtOne(t *testing.T) {
	svc, _ := newCartService(t, nil)
	ctx := cartCtx("s1")

	qty, err := svc.StageQuantity(ctx, 3, -5)
	require.NoError(t, err)
	require.Equal(t, 1, qty)
}

func TestDecreaseNeverDropsBelowOne(t *testing.T) {
	svc, _ := newCartService(t, nil)
	ctx := cartCtx("s1")
	require.NoError(t, svc.Add(ctx, 3, "Quesadilla", decimal.RequireFromString("20.00"), ""))

	require.NoError(t, svc.Decrease(ctx, 3))
	require.NoError(t, svc.Decrease(ctx, 3))

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, view.Lines[0].Quantity)
}

func TestRemoveDropsLineAndNotifies(t *testing.T) {
	svc, center := newCartService(t, nil)
	ctx := cartCtx("s1")
	require.NoError(t, svc.Add(ctx, 3, "Quesadilla", decimal.RequireFromString("20.00"), ""))

	require.NoError(t, svc.Remove(ctx, 3))

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.False(t, view.CheckoutEnabled)

	alerts := center.Active("s1")
	require.Equal(t, "Producto eliminado del carrito", alerts[len(alerts)-1].Message)
	require.Equal(t, notify.Info, alerts[len(alerts)-1].Kind)
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	svc, _ := newCartService(t, nil)
	require.NoError(t, svc.Add(cartCtx("s1"), 1, "Taco", decimal.RequireFromString("10.00"), ""))

	view, err := svc.View(cartCtx("s2"))
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}

func TestCheckoutPostsOneSalePerLineThenClears(t *testing.T) {
	var sales []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/venta", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		sales = append(sales, body)
		w.Write([]byte(`{"venta_id": 1}`))
	}))
	defer srv.Close()

	center := notify.NewCenter()
	remote := client.New(srv.URL, notify.CtxNotifier{Center: center})
	svc := NewCartService(NewMemoryCartStore(), center, remote, NewEventPublisher(nil))
	ctx := cartCtx("s1")

	require.NoError(t, svc.Add(ctx, 7, "Taco de Pastor", decimal.RequireFromString("15.00"), ""))
	_, err := svc.StageQuantity(ctx, 9, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Add(ctx, 9, "Agua de Horchata", decimal.RequireFromString("25.50"), ""))

	require.NoError(t, svc.Checkout(ctx, 4))

	require.Len(t, sales, 2)
	require.Equal(t, "Taco de Pastor", sales[0]["nombre_m"])
	require.Equal(t, 15.0, sales[0]["precio"])
	require.Equal(t, 4.0, sales[0]["cliente_id"])
	require.Equal(t, "Agua de Horchata", sales[1]["nombre_m"])
	require.Equal(t, 51.0, sales[1]["precio"])

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.Empty(t, view.Lines)

	alerts := center.Active("s1")
	require.Equal(t, "Pedido realizado exitosamente", alerts[len(alerts)-1].Message)
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	center := notify.NewCenter()
	remote := client.New(srv.URL, notify.CtxNotifier{Center: center})
	svc := NewCartService(NewMemoryCartStore(), center, remote, NewEventPublisher(nil))
	ctx := cartCtx("s1")

	require.NoError(t, svc.Add(ctx, 7, "Taco", decimal.RequireFromString("15.00"), ""))
	require.Error(t, svc.Checkout(ctx, 0))

	view, err := svc.View(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
}

func TestCheckoutOnEmptyCartDoesNothing(t *testing.T) {
	svc, center := newCartService(t, nil)
	require.NoError(t, svc.Checkout(cartCtx("s1"), 0))
	require.Empty(t, center.Active("s1"))
}
