package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"dashboard-service/internal/entity"
)

// CartStore keeps one cart per session for the lifetime of that session.
// Nothing else touches a cart: table refreshes, navigation and unrelated API
// calls never clear it.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*entity.CartState, error)
	Put(ctx context.Context, sessionID string, state *entity.CartState) error
}

// MemoryCartStore is the default store. Carts die with the process, which
// matches a session-scoped cart that was never meant to survive restarts.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]*entity.CartState
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: map[string]*entity.CartState{}}
}

func (s *MemoryCartStore) Get(ctx context.Context, sessionID string) (*entity.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.carts[sessionID]
	if !ok {
		return entity.NewCartState(), nil
	}
	return cloneCart(state), nil
}

func (s *MemoryCartStore) Put(ctx context.Context, sessionID string, state *entity.CartState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cloneCart(state)
	return nil
}

func cloneCart(state *entity.CartState) *entity.CartState {
	out := entity.NewCartState()
	out.Lines = append(out.Lines, state.Lines...)
	for id, qty := range state.Staged {
		out.Staged[id] = qty
	}
	return out
}

// RedisCartStore keeps carts in Redis so a multi-instance deployment shares
// them. Same get/set JSON shape as any other session cache.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: 24 * time.Hour}
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (*entity.CartState, error) {
	key := cartKey(sessionID)
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.NewCartState(), nil
		}
		logger.Error().Err(err).Msgf("Error getting cart %s from redis", sessionID)
		return nil, err
	}

	state := entity.NewCartState()
	if err := json.Unmarshal([]byte(val), state); err != nil {
		logger.Error().Err(err).Msgf("Error unmarshalling cart %s", sessionID)
		return nil, err
	}
	if state.Staged == nil {
		state.Staged = map[int]int{}
	}
	return state, nil
}

func (s *RedisCartStore) Put(ctx context.Context, sessionID string, state *entity.CartState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(sessionID), payload, s.ttl).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting cart %s in redis", sessionID)
		return err
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
