package alerts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
)

// TxRunner ejecuta el callback del evaluador dentro de una transacción,
// pasando repositorios atados a esa tx. Implementado por postgres.TxRunner.
type TxRunner interface {
	RunAlerts(ctx context.Context, fn func(
		stockRepo repository.StockLineRepository,
		alertRepo repository.StockAlertRepository,
	) error) error
}

// Evaluator consumidor de solo lectura del ledger: compara el stock total de
// cada producto contra su punto de reorden y abre/actualiza/cierra alertas.
// Idempotente: re-evaluar un déficit ya alertado refresca la alerta open
// existente, nunca crea una segunda.
type Evaluator struct {
	txRunner    TxRunner
	alertRepo   repository.StockAlertRepository // atado al pool, para listados
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewEvaluator construye el evaluador.
func NewEvaluator(
	txRunner TxRunner,
	alertRepo repository.StockAlertRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *Evaluator {
	return &Evaluator{
		txRunner:    txRunner,
		alertRepo:   alertRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// Evaluate evalúa un producto. Devuelve la alerta open resultante, o nil si
// el stock total cubre el punto de reorden (cerrando la alerta que hubiera).
func (e *Evaluator) Evaluate(ctx context.Context, productID string) (*entity.StockAlert, error) {
	product, err := e.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *entity.StockAlert
	err = e.txRunner.RunAlerts(ctx, func(
		stockRepo repository.StockLineRepository,
		alertRepo repository.StockAlertRepository,
	) error {
		total, err := stockRepo.SumByProduct(product.ID)
		if err != nil {
			return err
		}

		if product.ReorderPoint <= 0 || total >= product.ReorderPoint {
			// Sin déficit: cierre automático de la alerta open si existe.
			if _, err := alertRepo.Close(product.ID, "", now); err != nil {
				return err
			}
			return nil
		}

		deficit := product.ReorderPoint - total
		breakdown, err := stockRepo.ListByProduct(product.ID)
		if err != nil {
			return err
		}
		message := buildMessage(product, total, deficit, breakdown)

		open, err := alertRepo.GetOpenByProduct(product.ID)
		if err != nil {
			return err
		}
		if open != nil {
			if err := alertRepo.Refresh(open.ID, now, message, deficit); err != nil {
				return err
			}
			open.TriggeredAt = now
			open.Message = message
			open.Deficit = deficit
			result = open
			return nil
		}

		alert := &entity.StockAlert{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			Status:      entity.AlertOpen,
			TriggeredAt: now,
			Message:     message,
			Deficit:     deficit,
		}
		if err := alertRepo.Create(alert); err != nil {
			return err
		}
		result = alert
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result != nil {
		e.log.Warn().
			Str("product_id", product.ID).
			Str("sku", product.SKU).
			Int64("deficit", result.Deficit).
			Msg("producto bajo punto de reorden")
	}
	return result, nil
}

// EvaluateAll barre todos los productos con punto de reorden configurado.
// Devuelve cuántas alertas quedaron open. Pensado para el job de cron y el
// disparo manual post-mutación.
func (e *Evaluator) EvaluateAll(ctx context.Context) (int, error) {
	products, err := e.productRepo.ListWithReorderPoint()
	if err != nil {
		return 0, err
	}
	open := 0
	for _, p := range products {
		alert, err := e.Evaluate(ctx, p.ID)
		if err != nil {
			// El barrido no se detiene por un producto: registra y sigue.
			e.log.Error().Err(err).Str("product_id", p.ID).Msg("evaluación de alerta falló")
			continue
		}
		if alert != nil {
			open++
		}
	}
	return open, nil
}

// Close cierra manualmente la alerta open del producto, sin importar el nivel
// de stock. No impide que la siguiente evaluación la reabra si el déficit
// persiste.
func (e *Evaluator) Close(ctx context.Context, productID string, actor entity.Actor) error {
	if !actor.CanApprove() {
		return domain.ErrForbidden
	}
	now := time.Now()
	closed, err := e.alertRepo.Close(productID, actor.ID, now)
	if err != nil {
		return err
	}
	if !closed {
		return domain.ErrNotFound
	}
	e.log.Info().
		Str("product_id", productID).
		Str("actor", actor.ID).
		Msg("alerta cerrada manualmente")
	return nil
}

// ListOpen devuelve las alertas activas.
func (e *Evaluator) ListOpen(ctx context.Context, limit, offset int) ([]*entity.StockAlert, error) {
	return e.alertRepo.ListOpen(limit, offset)
}

// buildMessage arma el mensaje con el déficit y el desglose de dónde queda el
// stock restante, ordenado por ubicación.
func buildMessage(product *entity.Product, total, deficit int64, breakdown []*entity.StockLine) string {
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].LocationID < breakdown[j].LocationID
	})
	parts := make([]string, 0, len(breakdown))
	for _, line := range breakdown {
		parts = append(parts, fmt.Sprintf("%s=%d", line.LocationID, line.Quantity))
	}
	detail := "sin stock en ninguna ubicación"
	if len(parts) > 0 {
		detail = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s bajo punto de reorden: total %d de %d (déficit %d); stock restante: %s",
		product.SKU, total, product.ReorderPoint, deficit, detail)
}
