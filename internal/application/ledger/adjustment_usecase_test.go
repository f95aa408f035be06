package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Creación de solicitudes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustment_CreateTomaSnapshotYCalculaDelta(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)

	req, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID,
		PhysicalQuantity: 35, Reason: "conteo físico semanal",
	}, operator)
	require.NoError(t, err)

	assert.Equal(t, int64(40), req.SystemQuantity, "system_quantity es el snapshot al crear")
	assert.Equal(t, int64(35), req.PhysicalQuantity)
	assert.Equal(t, int64(-5), req.Delta)
	assert.Equal(t, entity.StatusPending, req.Status)
	assert.False(t, req.Flagged)
	assert.Equal(t, operatorID, req.CreatedBy)

	assert.Equal(t, int64(40), env.stock.quantity(productID, mainLocID),
		"crear la solicitud no toca el ledger")
	assert.Empty(t, env.audit.records)
}

func TestAdjustment_CreateMarcaFlaggedSobreTolerancia(t *testing.T) {
	env := newTestEnv(10, 0)
	env.stock.set(productID, mainLocID, 100)

	req, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID,
		PhysicalQuantity: 80, Reason: "faltante grande",
	}, operator)
	require.NoError(t, err)
	assert.True(t, req.Flagged, "|delta| = 20 > tolerancia 10 debe marcar la solicitud")

	within, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID,
		PhysicalQuantity: 95, Reason: "faltante chico",
	}, operator)
	require.NoError(t, err)
	assert.False(t, within.Flagged, "|delta| = 5 <= tolerancia 10 no se marca")
}

func TestAdjustment_CreateDeltaCeroEsValido(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 25)

	req, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID,
		PhysicalQuantity: 25, Reason: "conteo coincide, confirmación formal",
	}, operator)
	require.NoError(t, err)
	assert.Equal(t, int64(0), req.Delta)
}

func TestAdjustment_CreateRequiereMotivo(t *testing.T) {
	env := newTestEnv(0, 0)

	_, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID, PhysicalQuantity: 10,
	}, operator)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdjustment_CreateProductoInexistente(t *testing.T) {
	env := newTestEnv(0, 0)

	_, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: "99999999-9999-9999-9999-999999999999", LocationID: mainLocID,
		PhysicalQuantity: 10, Reason: "conteo",
	}, operator)
	assert.ErrorIs(t, err, domain.ErrValidation,
		"referenciar un producto inexistente es entrada inválida, no un 404")
}

func TestAdjustment_CreateUbicacionInexistente(t *testing.T) {
	env := newTestEnv(0, 0)

	_, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: "99999999-9999-9999-9999-999999999999",
		PhysicalQuantity: 10, Reason: "conteo",
	}, operator)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdjustment_CreateCantidadFisicaNegativa(t *testing.T) {
	env := newTestEnv(0, 0)

	_, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID,
		PhysicalQuantity: -1, Reason: "x",
	}, operator)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación
// ──────────────────────────────────────────────────────────────────────────────

func createPendingAdjustment(t *testing.T, env *testEnv, physical int64) *entity.AdjustmentRequest {
	t.Helper()
	req, err := env.adjustmentUC.Create(context.Background(), ledger.CreateAdjustmentInput{
		ProductID: productID, LocationID: mainLocID,
		PhysicalQuantity: physical, Reason: "conteo físico",
	}, operator)
	require.NoError(t, err)
	return req
}

func TestAdjustment_ApproveAplicaDeltaYAudita(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 35) // delta -5

	out, err := env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "visto en bodega")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, out.Status)
	require.NotNil(t, out.ProcessedBy)
	assert.Equal(t, supervisorID, *out.ProcessedBy)
	assert.Equal(t, int64(35), env.stock.quantity(productID, mainLocID),
		"aprobar deja el stock en la cantidad física contada")

	recs := env.audit.byType(entity.MovementAdjustment)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(40), recs[0].PreviousStock)
	assert.Equal(t, int64(35), recs[0].NewStock)
	assert.Equal(t, supervisorID, recs[0].UserID)
}

func TestAdjustment_ApproveSegundaVezConflicto(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 45) // delta +5

	_, err := env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "")
	require.NoError(t, err)

	_, err = env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "")
	require.ErrorIs(t, err, domain.ErrInvalidState, "la transición es exactamente-una-vez")

	assert.Equal(t, int64(45), env.stock.quantity(productID, mainLocID),
		"el segundo intento no debe volver a aplicar el delta")
	assert.Len(t, env.audit.byType(entity.MovementAdjustment), 1)
}

func TestAdjustment_ApproveOperadorProhibido(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 35)

	_, err := env.adjustmentUC.Approve(context.Background(), req.ID, operator, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, int64(40), env.stock.quantity(productID, mainLocID))
}

func TestAdjustment_ApproveStockDivergioQuedaFlagged(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 35) // delta -5 sobre snapshot 40

	// El stock se mueve entre la creación y la aprobación.
	env.stock.set(productID, mainLocID, 50)

	out, err := env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "")
	require.NoError(t, err)

	assert.Equal(t, int64(45), env.stock.quantity(productID, mainLocID),
		"el delta se aplica sobre la cantidad actual, no sobre el snapshot")
	assert.True(t, out.Flagged, "la divergencia fuerza el marcado")

	recs := env.audit.byType(entity.MovementAdjustment)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Observations, "divergió",
		"la auditoría debe documentar la divergencia del snapshot")
}

func TestAdjustment_ApproveDeltaNegativoSinStockAborta(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 10) // delta -30

	// El stock cae antes de aprobar: aplicar -30 dejaría negativo.
	env.stock.set(productID, mainLocID, 20)

	_, err := env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(20), env.stock.quantity(productID, mainLocID))
	still, err := env.adjustmentUC.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, still.Status,
		"la solicitud sigue pending para reintentarla después")
}

func TestAdjustment_ApproveDeltaCeroAudita(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 25)
	req := createPendingAdjustment(t, env, 25) // delta 0

	out, err := env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, out.Status)

	recs := env.audit.byType(entity.MovementAdjustment)
	require.Len(t, recs, 1, "un ajuste de delta cero también deja rastro")
	assert.Equal(t, recs[0].PreviousStock, recs[0].NewStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazo
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustment_RejectNoMutaYAudita(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 0) // delta -40

	out, err := env.adjustmentUC.Reject(context.Background(), req.ID, supervisor, "conteo mal hecho")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRejected, out.Status)
	assert.Equal(t, int64(40), env.stock.quantity(productID, mainLocID),
		"rechazar nunca toca el ledger")

	recs := env.audit.byType(entity.MovementRejection)
	require.Len(t, recs, 1)
	assert.Equal(t, recs[0].PreviousStock, recs[0].NewStock)
	assert.Equal(t, "conteo mal hecho", recs[0].Observations)
}

func TestAdjustment_RejectRequiereMotivo(t *testing.T) {
	env := newTestEnv(0, 0)
	req := createPendingAdjustment(t, env, 5)

	_, err := env.adjustmentUC.Reject(context.Background(), req.ID, supervisor, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdjustment_RejectDespuesDeApproveConflicto(t *testing.T) {
	env := newTestEnv(0, 0)
	env.stock.set(productID, mainLocID, 40)
	req := createPendingAdjustment(t, env, 45)

	_, err := env.adjustmentUC.Approve(context.Background(), req.ID, supervisor, "")
	require.NoError(t, err)

	_, err = env.adjustmentUC.Reject(context.Background(), req.ID, supervisor, "cambié de idea")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "el estado es terminal después de aprobar")
}

func TestAdjustment_GetByIDInexistente(t *testing.T) {
	env := newTestEnv(0, 0)
	_, err := env.adjustmentUC.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
