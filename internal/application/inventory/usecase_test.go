package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

// fakeStore simula la BD en memoria: productos, libro de movimientos e índice
// único por operation_id. El mutex hace las veces del lock de fila.
type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
	byOp      map[string]*entity.Movement

	// createErr se consume una vez en el siguiente Create (simula fallos de BD).
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]*entity.Product),
		byOp:     make(map[string]*entity.Movement),
	}
}

func (s *fakeStore) putProduct(id string, stock int) {
	s.products[id] = &entity.Product{ID: id, Name: "producto " + id, ReferenceCode: "REF-" + id, Stock: stock, IsActive: true}
}

func (s *fakeStore) insertMovementLocked(m *entity.Movement) error {
	if _, ok := s.byOp[m.OperationID]; ok {
		return domain.ErrDuplicate
	}
	if s.createErr != nil {
		err := s.createErr
		s.createErr = nil
		return err
	}
	cp := *m
	s.movements = append(s.movements, &cp)
	s.byOp[cp.OperationID] = &cp
	return nil
}

type fakeMovementRepo struct {
	s    *fakeStore
	inTx bool
}

func (r *fakeMovementRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	defer r.lock()()
	return r.s.insertMovementLocked(m)
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	defer r.lock()()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) GetByOperationID(operationID string) (*entity.Movement, error) {
	defer r.lock()()
	if m, ok := r.s.byOp[operationID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	defer r.lock()()
	out := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeProductRepo struct {
	s    *fakeStore
	inTx bool
}

func (r *fakeProductRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	defer r.lock()()
	cp := *p
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.lock()()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByReferenceCode(code string) (*entity.Product, error) {
	defer r.lock()()
	for _, p := range r.s.products {
		if p.ReferenceCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	defer r.lock()()
	cp := *p
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock int, updatedAt time.Time) error {
	defer r.lock()()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	defer r.lock()()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.s.products, id)
	return nil
}

// fakeTxRunner serializa las unidades de trabajo con el mutex del store y
// restaura un snapshot si fn falla, igual que un Rollback real.
type fakeTxRunner struct {
	s *fakeStore
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snapProducts := make(map[string]*entity.Product, len(t.s.products))
	for id, p := range t.s.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapMovements := append([]*entity.Movement(nil), t.s.movements...)
	snapByOp := make(map[string]*entity.Movement, len(t.s.byOp))
	for k, v := range t.s.byOp {
		snapByOp[k] = v
	}

	err := fn(&fakeMovementRepo{s: t.s, inTx: true}, &fakeProductRepo{s: t.s, inTx: true})
	if err != nil {
		t.s.products = snapProducts
		t.s.movements = snapMovements
		t.s.byOp = snapByOp
	}
	return err
}

func newTestUseCase(store *fakeStore) *ApplyMovementUseCase {
	return NewApplyMovementUseCase(&fakeTxRunner{s: store}, &fakeMovementRepo{s: store})
}

func stockOf(t *testing.T, store *fakeStore, id string) int {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	p, ok := store.products[id]
	require.True(t, ok)
	return p.Stock
}

func TestApplyMovement_SecuenciaInOutAdj(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 5)
	uc := newTestUseCase(store)
	ctx := context.Background()

	m, err := uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindIn, Quantity: 3, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindIn, m.Kind)
	assert.Equal(t, 8, stockOf(t, store, "p1"))

	_, err = uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindOut, Quantity: 3, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, store, "p1"))

	_, err = uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindAdj, Quantity: 12, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 12, stockOf(t, store, "p1"))

	assert.Len(t, store.movements, 3)
}

func TestApplyMovement_ValidacionEntrada(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 5)
	uc := newTestUseCase(store)
	ctx := context.Background()

	cases := []struct {
		name     string
		kind     string
		quantity int
		wantErr  error
	}{
		{"IN cantidad cero", entity.MovementKindIn, 0, domain.ErrInvalidQuantity},
		{"OUT cantidad negativa", entity.MovementKindOut, -2, domain.ErrInvalidQuantity},
		{"ADJ negativo", entity.MovementKindAdj, -1, domain.ErrInvalidQuantity},
		{"tipo desconocido", "TRANSFER", 1, domain.ErrUnsupportedMovementKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: tc.kind, Quantity: tc.quantity, UserID: "u1"})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Nada debe haber tocado el stock ni el libro.
	assert.Equal(t, 5, stockOf(t, store, "p1"))
	assert.Empty(t, store.movements)
}

func TestApplyMovement_AdjCeroPermitido(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 9)
	uc := newTestUseCase(store)

	_, err := uc.Apply(context.Background(), ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindAdj, Quantity: 0, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 0, stockOf(t, store, "p1"))
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.Apply(context.Background(), ApplyMovementInput{ProductID: "nope", Kind: entity.MovementKindIn, Quantity: 1, UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

func TestApplyMovement_StockInsuficiente(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 2)
	uc := newTestUseCase(store)

	_, err := uc.Apply(context.Background(), ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindOut, Quantity: 5, UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no deja rastro: ni stock ni libro cambian.
	assert.Equal(t, 2, stockOf(t, store, "p1"))
	assert.Empty(t, store.movements)
}

func TestApplyMovement_IdempotenciaReplay(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 10)
	uc := newTestUseCase(store)
	ctx := context.Background()

	opID := uuid.New().String()
	first, err := uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindOut, Quantity: 4, UserID: "u1", OperationID: opID})
	require.NoError(t, err)
	assert.Equal(t, 6, stockOf(t, store, "p1"))

	// El replay devuelve la fila original aunque los parámetros difieran;
	// el stock no se toca por segunda vez.
	replay, err := uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindOut, Quantity: 999, UserID: "u2", OperationID: opID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)
	assert.Equal(t, 4, replay.Quantity)
	assert.Equal(t, 6, stockOf(t, store, "p1"))
	assert.Len(t, store.movements, 1)
}

// duplicateTxRunner simula la carrera: otro replay con el mismo operation_id
// confirma su transacción primero y nuestro INSERT pierde (23505).
type duplicateTxRunner struct {
	s      *fakeStore
	winner *entity.Movement
}

func (t *duplicateTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	cp := *t.winner
	t.s.movements = append(t.s.movements, &cp)
	t.s.byOp[cp.OperationID] = &cp
	return domain.ErrDuplicate
}

func TestApplyMovement_CarreraDeIdempotencia(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 10)

	opID := uuid.New().String()
	winner := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   "p1",
		Kind:        entity.MovementKindOut,
		Quantity:    4,
		UserID:      "u2",
		OperationID: opID,
		PerformedAt: time.Now(),
		CreatedAt:   time.Now(),
	}
	uc := NewApplyMovementUseCase(&duplicateTxRunner{s: store, winner: winner}, &fakeMovementRepo{s: store})

	// El pre-chequeo no encuentra nada; el INSERT pierde la carrera y el caso
	// de uso devuelve la fila ganadora, nunca ErrDuplicate.
	got, err := uc.Apply(context.Background(), ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindOut, Quantity: 4, UserID: "u1", OperationID: opID})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, "u2", got.UserID)
}

func TestApplyMovement_AtomicidadAnteFalloDelLibro(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 5)
	store.createErr = errors.New("fallo de escritura")
	uc := newTestUseCase(store)

	_, err := uc.Apply(context.Background(), ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindIn, Quantity: 3, UserID: "u1"})
	require.Error(t, err)

	// El UpdateStock previo debe revertirse junto con el INSERT fallido.
	assert.Equal(t, 5, stockOf(t, store, "p1"))
	assert.Empty(t, store.movements)
}

func TestApplyMovement_SalidasConcurrentesSerializadas(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 10)
	uc := newTestUseCase(store)

	var (
		mu            sync.Mutex
		insufficients int
	)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := uc.Apply(ctx, ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindOut, Quantity: 6, UserID: "u1"})
			if errors.Is(err, domain.ErrInsufficientStock) {
				mu.Lock()
				insufficients++
				mu.Unlock()
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	// Con stock 10, de dos OUT de 6 exactamente uno gana.
	assert.Equal(t, 1, insufficients)
	assert.Equal(t, 4, stockOf(t, store, "p1"))
	assert.Len(t, store.movements, 1)
}

func TestApplyMovement_PerformedAtExplicito(t *testing.T) {
	store := newFakeStore()
	store.putProduct("p1", 1)
	uc := newTestUseCase(store)

	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	m, err := uc.Apply(context.Background(), ApplyMovementInput{ProductID: "p1", Kind: entity.MovementKindIn, Quantity: 1, UserID: "u1", PerformedAt: &at})
	require.NoError(t, err)
	assert.True(t, m.PerformedAt.Equal(at))
	assert.NotEmpty(t, m.OperationID) // generado si el caller no lo envía
}
