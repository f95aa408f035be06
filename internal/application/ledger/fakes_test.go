package ledger_test

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso del ledger
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func stockKey(productID, locationID string) string {
	return productID + "|" + locationID
}

type fakeStockRepo struct {
	lines map[string]*entity.StockLine
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{lines: make(map[string]*entity.StockLine)}
}

func (r *fakeStockRepo) set(productID, locationID string, qty int64) {
	r.lines[stockKey(productID, locationID)] = &entity.StockLine{
		ProductID: productID, LocationID: locationID, Quantity: qty,
	}
}

func (r *fakeStockRepo) quantity(productID, locationID string) int64 {
	if line, ok := r.lines[stockKey(productID, locationID)]; ok {
		return line.Quantity
	}
	return 0
}

func (r *fakeStockRepo) Get(productID, locationID string) (*entity.StockLine, error) {
	if line, ok := r.lines[stockKey(productID, locationID)]; ok {
		cp := *line
		return &cp, nil
	}
	return &entity.StockLine{ProductID: productID, LocationID: locationID}, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, locationID string) (*entity.StockLine, error) {
	return r.Get(productID, locationID)
}

func (r *fakeStockRepo) Upsert(line *entity.StockLine) error {
	cp := *line
	r.lines[stockKey(line.ProductID, line.LocationID)] = &cp
	return nil
}

func (r *fakeStockRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	for _, line := range r.lines {
		if line.ProductID == productID {
			total += line.Quantity
		}
	}
	return total, nil
}

func (r *fakeStockRepo) ListByProduct(productID string) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	for _, line := range r.lines {
		if line.ProductID == productID && line.Quantity > 0 {
			cp := *line
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) TotalAtLocationForUpdate(locationID string) (int64, error) {
	var total int64
	for _, line := range r.lines {
		if line.LocationID == locationID {
			total += line.Quantity
		}
	}
	return total, nil
}

type fakeAuditRepo struct {
	records []*entity.AuditRecord
}

func (r *fakeAuditRepo) Create(rec *entity.AuditRecord) error {
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeAuditRepo) List(filter repository.AuditFilter) ([]*entity.AuditRecord, error) {
	return r.records, nil
}

func (r *fakeAuditRepo) Count(filter repository.AuditFilter) (int, error) {
	return len(r.records), nil
}

// byType filtra los registros por tipo de movimiento.
func (r *fakeAuditRepo) byType(movementType string) []*entity.AuditRecord {
	var out []*entity.AuditRecord
	for _, rec := range r.records {
		if rec.MovementType == movementType {
			out = append(out, rec)
		}
	}
	return out
}

type fakeAdjustmentRepo struct {
	requests map[string]*entity.AdjustmentRequest
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{requests: make(map[string]*entity.AdjustmentRequest)}
}

func (r *fakeAdjustmentRepo) Create(req *entity.AdjustmentRequest) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(id string) (*entity.AdjustmentRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeAdjustmentRepo) GetForUpdate(id string) (*entity.AdjustmentRequest, error) {
	return r.GetByID(id)
}

func (r *fakeAdjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.AdjustmentRequest, error) {
	var out []*entity.AdjustmentRequest
	for _, req := range r.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) Resolve(id, status, processedBy, comment string, processedAt time.Time, flagged bool) (bool, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != entity.StatusPending {
		return false, nil
	}
	req.Status = status
	req.ProcessedBy = &processedBy
	req.ProcessedAt = &processedAt
	req.ResolutionComment = comment
	req.Flagged = flagged
	return true, nil
}

type fakeTransferRepo struct {
	transfers map[string]*entity.InternalTransfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: make(map[string]*entity.InternalTransfer)}
}

func (r *fakeTransferRepo) Create(tr *entity.InternalTransfer) error {
	cp := *tr
	r.transfers[tr.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.InternalTransfer, error) {
	tr, ok := r.transfers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *tr
	return &cp, nil
}

func (r *fakeTransferRepo) GetForUpdate(id string) (*entity.InternalTransfer, error) {
	return r.GetByID(id)
}

func (r *fakeTransferRepo) List(filter repository.TransferFilter) ([]*entity.InternalTransfer, error) {
	var out []*entity.InternalTransfer
	for _, tr := range r.transfers {
		if filter.Status != "" && tr.Status != filter.Status {
			continue
		}
		cp := *tr
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTransferRepo) Resolve(id, status, processedBy, comment string, processedAt time.Time) (bool, error) {
	tr, ok := r.transfers[id]
	if !ok || tr.Status != entity.StatusPending {
		return false, nil
	}
	tr.Status = status
	tr.ProcessedBy = &processedBy
	tr.ProcessedAt = &processedAt
	tr.ResolutionComment = comment
	return true, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListWithReorderPoint() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.ReorderPoint > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo(locations ...*entity.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{locations: make(map[string]*entity.Location)}
	for _, l := range locations {
		r.locations[l.ID] = l
	}
	return r
}

func (r *fakeLocationRepo) Create(l *entity.Location) error { r.locations[l.ID] = l; return nil }

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (r *fakeLocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.locations {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeLocationRepo) Update(l *entity.Location) error { r.locations[l.ID] = l; return nil }

func (r *fakeLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeStockRepo) snapshot() map[string]entity.StockLine {
	snap := make(map[string]entity.StockLine, len(r.lines))
	for k, v := range r.lines {
		snap[k] = *v
	}
	return snap
}

func (r *fakeStockRepo) restore(snap map[string]entity.StockLine) {
	r.lines = make(map[string]*entity.StockLine, len(snap))
	for k, v := range snap {
		cp := v
		r.lines[k] = &cp
	}
}

func (r *fakeAdjustmentRepo) snapshot() map[string]entity.AdjustmentRequest {
	snap := make(map[string]entity.AdjustmentRequest, len(r.requests))
	for k, v := range r.requests {
		snap[k] = *v
	}
	return snap
}

func (r *fakeAdjustmentRepo) restore(snap map[string]entity.AdjustmentRequest) {
	r.requests = make(map[string]*entity.AdjustmentRequest, len(snap))
	for k, v := range snap {
		cp := v
		r.requests[k] = &cp
	}
}

func (r *fakeTransferRepo) snapshot() map[string]entity.InternalTransfer {
	snap := make(map[string]entity.InternalTransfer, len(r.transfers))
	for k, v := range r.transfers {
		snap[k] = *v
	}
	return snap
}

func (r *fakeTransferRepo) restore(snap map[string]entity.InternalTransfer) {
	r.transfers = make(map[string]*entity.InternalTransfer, len(snap))
	for k, v := range snap {
		cp := v
		r.transfers[k] = &cp
	}
}

// fakeTxRunner ejecuta el callback contra los fakes compartidos con semántica
// de rollback: si fn devuelve error, el estado previo se restaura completo.
// Las transacciones concurrentes se serializan con el mutex, como si cada una
// tomara todos los locks de fila de entrada.
type fakeTxRunner struct {
	mu       sync.Mutex
	stock    *fakeStockRepo
	audit    *fakeAuditRepo
	adj      *fakeAdjustmentRepo
	transfer *fakeTransferRepo
}

var _ ledger.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLineRepository,
	auditRepo repository.AuditRecordRepository,
	adjustmentRepo repository.AdjustmentRequestRepository,
	transferRepo repository.InternalTransferRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stockSnap := r.stock.snapshot()
	auditLen := len(r.audit.records)
	adjSnap := r.adj.snapshot()
	trSnap := r.transfer.snapshot()

	if err := fn(r.stock, r.audit, r.adj, r.transfer); err != nil {
		r.stock.restore(stockSnap)
		r.audit.records = r.audit.records[:auditLen]
		r.adj.restore(adjSnap)
		r.transfer.restore(trSnap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture común
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID  = "11111111-1111-1111-1111-111111111111"
	mainLocID  = "22222222-2222-2222-2222-222222222222"
	otherLocID = "33333333-3333-3333-3333-333333333333"

	operatorID   = "aaaaaaaa-0000-0000-0000-000000000001"
	supervisorID = "aaaaaaaa-0000-0000-0000-000000000002"
)

var (
	operator   = entity.Actor{ID: operatorID, Role: entity.RoleOperator}
	supervisor = entity.Actor{ID: supervisorID, Role: entity.RoleSupervisor}
)

// testEnv agrupa los fakes y casos de uso listos para un test.
type testEnv struct {
	stock    *fakeStockRepo
	audit    *fakeAuditRepo
	adj      *fakeAdjustmentRepo
	transfer *fakeTransferRepo

	engine       *ledger.Engine
	adjustmentUC *ledger.AdjustmentUseCase
	transferUC   *ledger.TransferUseCase
}

// newTestEnv arma el fixture: un producto y dos ubicaciones activas.
// capacity define la capacidad de la ubicación principal (0 = sin límite).
func newTestEnv(tolerance, capacity int64) *testEnv {
	stock := newFakeStockRepo()
	audit := &fakeAuditRepo{}
	adj := newFakeAdjustmentRepo()
	transfer := newFakeTransferRepo()
	runner := &fakeTxRunner{stock: stock, audit: audit, adj: adj, transfer: transfer}

	products := newFakeProductRepo(&entity.Product{
		ID: productID, SKU: "SKU-001", Name: "Tornillo M8", ReorderPoint: 0,
		Category: entity.CategoryStandard,
	})
	locations := newFakeLocationRepo(
		&entity.Location{ID: mainLocID, Code: "BOD-A", Capacity: capacity, IsActive: true},
		&entity.Location{ID: otherLocID, Code: "BOD-B", Capacity: 0, IsActive: true},
	)

	log := testLogger()
	return &testEnv{
		stock:    stock,
		audit:    audit,
		adj:      adj,
		transfer: transfer,
		engine:   ledger.NewEngine(runner, products, locations, log),
		adjustmentUC: ledger.NewAdjustmentUseCase(
			runner, adj, stock, products, locations, tolerance, log,
		),
		transferUC: ledger.NewTransferUseCase(runner, transfer, products, locations, log),
	}
}
