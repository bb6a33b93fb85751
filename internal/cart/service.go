package cart

import (
	"context"
	"encoding/json"

	"github.com/glowbeauty/glow-backend/internal/state"
	pkgerrors "github.com/glowbeauty/glow-backend/pkg/errors"
	"github.com/glowbeauty/glow-backend/pkg/logger"
	"github.com/glowbeauty/glow-backend/pkg/types"
)

// ProductReader resolves a catalog product into the frozen snapshot a cart
// line carries. Implemented by the catalog service.
type ProductReader interface {
	Snapshot(ctx context.Context, productID int) (types.ProductSnapshot, error)
}

// Service exposes the cart operations for one storefront session. Every
// mutating call persists the resulting state before returning it.
type Service interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Add(ctx context.Context, sessionID string, productID int) (State, error)
	Remove(ctx context.Context, sessionID string, productID int) (State, error)
	SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (State, error)
	Clear(ctx context.Context, sessionID string) (State, error)
}

type ServiceParams struct {
	Store    state.SnapshotStore
	Products ProductReader
	Logger   *logger.Logger
}

type service struct {
	store    state.SnapshotStore
	products ProductReader
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service requires a snapshot store")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service requires a product reader")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service requires a logger")
	}
	return &service{store: params.Store, products: params.Products, logg: params.Logger}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (State, error) {
	return s.load(ctx, sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, productID int) (State, error) {
	product, err := s.products.Snapshot(ctx, productID)
	if err != nil {
		return Empty(), err
	}
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Empty(), err
	}
	next := Add(current, product)
	s.persist(ctx, sessionID, next)
	return next, nil
}

func (s *service) Remove(ctx context.Context, sessionID string, productID int) (State, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Empty(), err
	}
	next, changed := Remove(current, productID)
	if changed {
		s.persist(ctx, sessionID, next)
	}
	return next, nil
}

func (s *service) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) (State, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Empty(), err
	}
	next, changed := SetQuantity(current, productID, quantity)
	if changed {
		s.persist(ctx, sessionID, next)
	}
	return next, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (State, error) {
	next := Clear(Empty())
	s.persist(ctx, sessionID, next)
	return next, nil
}

func (s *service) load(ctx context.Context, sessionID string) (State, error) {
	raw, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Empty(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}
	return Restore(raw), nil
}

// persist is best-effort: a snapshot write failure must not fail the
// operation, the in-memory state the caller receives is already correct.
func (s *service) persist(ctx context.Context, sessionID string, next State) {
	ctx = s.logg.WithSessionID(ctx, sessionID)
	raw, err := json.Marshal(next)
	if err != nil {
		s.logg.Warn(ctx, "cart snapshot marshal failed")
		return
	}
	if err := s.store.Save(ctx, sessionID, raw); err != nil {
		s.logg.Warn(ctx, "cart snapshot write failed")
	}
}
