package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/warehouse-ledger/internal/application/alerts"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del evaluador
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	// key: productID|locationID
	lines map[string]*entity.StockLine
}

func (r *fakeStockRepo) set(productID, locationID string, qty int64) {
	if r.lines == nil {
		r.lines = make(map[string]*entity.StockLine)
	}
	r.lines[productID+"|"+locationID] = &entity.StockLine{
		ProductID: productID, LocationID: locationID, Quantity: qty,
	}
}

func (r *fakeStockRepo) Get(productID, locationID string) (*entity.StockLine, error) {
	if line, ok := r.lines[productID+"|"+locationID]; ok {
		cp := *line
		return &cp, nil
	}
	return &entity.StockLine{ProductID: productID, LocationID: locationID}, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, locationID string) (*entity.StockLine, error) {
	return r.Get(productID, locationID)
}

func (r *fakeStockRepo) Upsert(line *entity.StockLine) error {
	r.set(line.ProductID, line.LocationID, line.Quantity)
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

type fakeAlertRepo struct {
	alerts map[string]*entity.StockAlert // key: alert ID
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[string]*entity.StockAlert)}
}

func (r *fakeAlertRepo) GetOpenByProduct(productID string) (*entity.StockAlert, error) {
	for _, a := range r.alerts {
		if a.ProductID == productID && a.Status == entity.AlertOpen {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) Create(alert *entity.StockAlert) error {
	cp := *alert
	r.alerts[alert.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) Refresh(id string, triggeredAt time.Time, message string, deficit int64) error {
	if a, ok := r.alerts[id]; ok && a.Status == entity.AlertOpen {
		a.TriggeredAt = triggeredAt
		a.Message = message
		a.Deficit = deficit
	}
	return nil
}

func (r *fakeAlertRepo) Close(productID, closedBy string, closedAt time.Time) (bool, error) {
	for _, a := range r.alerts {
		if a.ProductID == productID && a.Status == entity.AlertOpen {
			a.Status = entity.AlertClosed
			a.ClosedAt = &closedAt
			if closedBy != "" {
				by := closedBy
				a.ClosedBy = &by
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) ListOpen(limit, offset int) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if a.Status == entity.AlertOpen {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
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

type fakeAlertsTxRunner struct {
	stock  *fakeStockRepo
	alerts *fakeAlertRepo
}

var _ alerts.TxRunner = (*fakeAlertsTxRunner)(nil)

func (r *fakeAlertsTxRunner) RunAlerts(ctx context.Context, fn func(
	stockRepo repository.StockLineRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	return fn(r.stock, r.alerts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID    = "11111111-1111-1111-1111-111111111111"
	locA         = "22222222-2222-2222-2222-222222222222"
	locB         = "33333333-3333-3333-3333-333333333333"
	supervisorID = "aaaaaaaa-0000-0000-0000-000000000002"
)

var supervisor = entity.Actor{ID: supervisorID, Role: entity.RoleSupervisor}

type alertEnv struct {
	stock     *fakeStockRepo
	alerts    *fakeAlertRepo
	evaluator *alerts.Evaluator
}

// newAlertEnv producto con punto de reorden 100.
func newAlertEnv(reorderPoint int64) *alertEnv {
	stock := &fakeStockRepo{lines: make(map[string]*entity.StockLine)}
	alertRepo := newFakeAlertRepo()
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, SKU: "SKU-001", Name: "Tornillo M8", ReorderPoint: reorderPoint},
	}}
	runner := &fakeAlertsTxRunner{stock: stock, alerts: alertRepo}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return &alertEnv{
		stock:     stock,
		alerts:    alertRepo,
		evaluator: alerts.NewEvaluator(runner, alertRepo, products, log),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluator_AbreAlertaConDeficit(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 30)
	env.stock.set(productID, locB, 20)

	alert, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, alert, "total 50 < reorden 100 debe abrir alerta")

	assert.Equal(t, entity.AlertOpen, alert.Status)
	assert.Equal(t, int64(50), alert.Deficit)
	assert.Contains(t, alert.Message, "SKU-001")
	assert.Contains(t, alert.Message, "déficit 50")
}

func TestEvaluator_ReevaluarRefrescaMismaAlerta(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 30)

	first, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// El déficit cambia; la re-evaluación actualiza la alerta existente.
	env.stock.set(productID, locA, 60)
	second, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, first.ID, second.ID,
		"la re-evaluación es idempotente: misma alerta, no una nueva")
	assert.Equal(t, int64(40), second.Deficit)

	open, err := env.alerts.ListOpen(100, 0)
	require.NoError(t, err)
	assert.Len(t, open, 1, "a lo sumo una alerta open por producto")
}

func TestEvaluator_StockRecuperadoCierraAutomatico(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 30)

	_, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)

	env.stock.set(productID, locA, 150)
	alert, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	assert.Nil(t, alert, "sin déficit no hay alerta abierta")

	open, err := env.alerts.ListOpen(100, 0)
	require.NoError(t, err)
	assert.Empty(t, open, "la alerta previa debe quedar cerrada automáticamente")
}

func TestEvaluator_SinPuntoDeReordenNoAlerta(t *testing.T) {
	env := newAlertEnv(0)
	env.stock.set(productID, locA, 0)

	alert, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	assert.Nil(t, alert, "punto de reorden 0 deshabilita la alerta")
}

func TestEvaluator_StockExactoEnElUmbralNoAlerta(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 100)

	alert, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	assert.Nil(t, alert, "total == reorden no es déficit")
}

func TestEvaluator_MensajeIncluyeDesglosePorUbicacion(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 30)
	env.stock.set(productID, locB, 20)

	alert, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Contains(t, alert.Message, locA+"=30")
	assert.Contains(t, alert.Message, locB+"=20")
}

func TestEvaluator_ProductoInexistente(t *testing.T) {
	env := newAlertEnv(100)

	_, err := env.evaluator.Evaluate(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvaluator_CierreManualPorSupervisor(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 30)

	_, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)

	err = env.evaluator.Close(context.Background(), productID, supervisor)
	require.NoError(t, err)

	open, err := env.alerts.ListOpen(100, 0)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestEvaluator_CierreManualOperadorProhibido(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 30)

	_, err := env.evaluator.Evaluate(context.Background(), productID)
	require.NoError(t, err)

	operator := entity.Actor{ID: "op", Role: entity.RoleOperator}
	err = env.evaluator.Close(context.Background(), productID, operator)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEvaluator_CierreManualSinAlertaAbierta(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 150)

	err := env.evaluator.Close(context.Background(), productID, supervisor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvaluator_EvaluateAllCuentaAbiertas(t *testing.T) {
	env := newAlertEnv(100)
	env.stock.set(productID, locA, 10)

	open, err := env.evaluator.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, open)
}
