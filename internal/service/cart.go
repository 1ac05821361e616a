package service

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/client"
	"dashboard-service/internal/entity"
	"dashboard-service/internal/notify"
	"dashboard-service/internal/session"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CartView is what the cart panel renders: the lines plus the derived
// totals, recomputed on every call.
type CartView struct {
	Lines           []entity.CartLine
	TotalItems      int
	TotalPrice      decimal.Decimal
	CheckoutEnabled bool
}

// CartService is the cart engine. Only its operations mutate cart state;
// loads, navigation and unrelated API calls leave it untouched.
type CartService struct {
	store  CartStore
	center *notify.Center
	client *client.Client
	events *EventPublisher
}

// NewCartService creates a new instance of CartService.
func NewCartService(store CartStore, center *notify.Center, cli *client.Client, events *EventPublisher) *CartService {
	return &CartService{store: store, center: center, client: cli, events: events}
}

// StageQuantity adjusts the pre-add quantity shown next to a menu card by
// delta, clamped to a minimum of 1. The cart itself is not touched until Add.
func (s *CartService) StageQuantity(ctx context.Context, productID, delta int) (int, error) {
	sid := session.IDFromContext(ctx)
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		return 0, err
	}
	qty := state.StagedQuantity(productID) + delta
	if qty < 1 {
		qty = 1
	}
	state.Staged[productID] = qty
	if err := s.store.Put(ctx, sid, state); err != nil {
		return 0, err
	}
	return qty, nil
}

// Add puts the staged quantity of a product into the cart. A line for the
// same product merges by summing quantities instead of duplicating. The
// staged quantity resets to 1 afterwards.
func (s *CartService) Add(ctx context.Context, productID int, name string, unitPrice decimal.Decimal, description string) error {
	sid := session.IDFromContext(ctx)
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		return err
	}

	qty := state.StagedQuantity(productID)
	if line := state.Line(productID); line != nil {
		line.Quantity += qty
	} else {
		state.Lines = append(state.Lines, entity.CartLine{
			ProductID:   productID,
			Name:        name,
			UnitPrice:   unitPrice,
			Description: description,
			Quantity:    qty,
		})
	}
	state.Staged[productID] = 1

	if err := s.store.Put(ctx, sid, state); err != nil {
		return err
	}
	s.center.Push(sid, notify.Success, fmt.Sprintf("%s agregado al carrito", name))
	return nil
}

// Increase bumps an existing line's quantity by one.
func (s *CartService) Increase(ctx context.Context, productID int) error {
	return s.adjust(ctx, productID, 1)
}

// Decrease lowers an existing line's quantity by one, never below 1.
// Removal is the only way a line reaches zero.
func (s *CartService) Decrease(ctx context.Context, productID int) error {
	return s.adjust(ctx, productID, -1)
}

func (s *CartService) adjust(ctx context.Context, productID, delta int) error {
	sid := session.IDFromContext(ctx)
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	line := state.Line(productID)
	if line == nil {
		return nil
	}
	if line.Quantity+delta < 1 {
		return nil
	}
	line.Quantity += delta
	return s.store.Put(ctx, sid, state)
}

// Remove drops a line entirely.
func (s *CartService) Remove(ctx context.Context, productID int) error {
	sid := session.IDFromContext(ctx)
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	kept := state.Lines[:0]
	for _, line := range state.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	state.Lines = kept
	if err := s.store.Put(ctx, sid, state); err != nil {
		return err
	}
	s.center.Push(sid, notify.Info, "Producto eliminado del carrito")
	return nil
}

// View recomputes the totals from the current lines. Checkout is enabled
// exactly when the cart has at least one line.
func (s *CartService) View(ctx context.Context) (*CartView, error) {
	state, err := s.store.Get(ctx, session.IDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	view := &CartView{Lines: state.Lines, TotalPrice: decimal.Zero}
	for _, line := range state.Lines {
		view.TotalItems += line.Quantity
		view.TotalPrice = view.TotalPrice.Add(line.Subtotal())
	}
	view.CheckoutEnabled = len(state.Lines) > 0
	return view, nil
}

// Staged exposes the staged quantities for the menu card renderer.
func (s *CartService) Staged(ctx context.Context) (map[int]int, error) {
	state, err := s.store.Get(ctx, session.IDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return state.Staged, nil
}

// Checkout records one sale per cart line against the remote API, then
// clears the cart. A failed line leaves the cart intact for retry; the
// remote layer has already notified the session by then.
func (s *CartService) Checkout(ctx context.Context, clienteID int) error {
	sid := session.IDFromContext(ctx)
	state, err := s.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	if len(state.Lines) == 0 {
		return nil
	}

	for _, line := range state.Lines {
		payload := map[string]any{
			"nombre_m": line.Name,
			"precio":   line.Subtotal().InexactFloat64(),
		}
		if clienteID > 0 {
			payload["cliente_id"] = clienteID
		}
		if _, err := s.client.Post(ctx, "/venta", payload); err != nil {
			logger.Error().Err(err).Msgf("Error registrando venta de producto %d", line.ProductID)
			return err
		}
		s.events.Publish(ctx, string(entity.KindSale), "checkout", line.ProductID)
	}

	state.Lines = nil
	if err := s.store.Put(ctx, sid, state); err != nil {
		return err
	}
	s.center.Push(sid, notify.Success, "Pedido realizado exitosamente")
	return nil
}
