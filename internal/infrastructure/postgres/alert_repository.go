package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación PostgreSQL de alertas de reorden.
// El índice único parcial (product_id WHERE status = 'open') garantiza a lo
// sumo una alerta abierta por producto.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// GetOpenByProduct devuelve la alerta abierta del producto, o nil si no hay.
func (r *StockAlertRepo) GetOpenByProduct(productID string) (*entity.StockAlert, error) {
	query := `
		SELECT id, product_id, status, triggered_at, message, deficit, closed_at, closed_by
		FROM stock_alert WHERE product_id = $1 AND status = 'open'`
	var a entity.StockAlert
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&a.ID, &a.ProductID, &a.Status, &a.TriggeredAt, &a.Message, &a.Deficit,
		&a.ClosedAt, &a.ClosedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open alert: %w", err)
	}
	return &a, nil
}

// Create persiste una alerta nueva en estado open.
func (r *StockAlertRepo) Create(alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alert (id, product_id, status, triggered_at, message, deficit)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ProductID, alert.Status, alert.TriggeredAt, alert.Message, alert.Deficit)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// Refresh actualiza la alerta abierta en vez de acumular duplicados.
func (r *StockAlertRepo) Refresh(id string, triggeredAt time.Time, message string, deficit int64) error {
	query := `
		UPDATE stock_alert SET triggered_at = $2, message = $3, deficit = $4
		WHERE id = $1 AND status = 'open'`
	_, err := r.q.Exec(context.Background(), query, id, triggeredAt, message, deficit)
	if err != nil {
		return fmt.Errorf("refresh alert: %w", err)
	}
	return nil
}

// Close cierra la alerta abierta del producto. closedBy vacío se guarda como
// NULL (cierre automático del evaluador). Devuelve false si no había alerta.
func (r *StockAlertRepo) Close(productID, closedBy string, closedAt time.Time) (bool, error) {
	by := (*string)(nil)
	if closedBy != "" {
		by = &closedBy
	}
	query := `
		UPDATE stock_alert SET status = 'closed', closed_at = $2, closed_by = $3
		WHERE product_id = $1 AND status = 'open'`
	tag, err := r.q.Exec(context.Background(), query, productID, closedAt, by)
	if err != nil {
		return false, fmt.Errorf("close alert: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListOpen devuelve la página de alertas abiertas, más reciente primero.
func (r *StockAlertRepo) ListOpen(limit, offset int) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, product_id, status, triggered_at, message, deficit, closed_at, closed_by
		FROM stock_alert WHERE status = 'open'
		ORDER BY triggered_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list open alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Status, &a.TriggeredAt, &a.Message,
			&a.Deficit, &a.ClosedAt, &a.ClosedBy); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
