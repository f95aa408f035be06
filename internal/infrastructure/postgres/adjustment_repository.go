package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

var _ repository.AdjustmentRequestRepository = (*AdjustmentRequestRepo)(nil)

// AdjustmentRequestRepo implementación PostgreSQL de solicitudes de ajuste.
type AdjustmentRequestRepo struct {
	q Querier
}

// NewAdjustmentRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRequestRepository(q Querier) *AdjustmentRequestRepo {
	return &AdjustmentRequestRepo{q: q}
}

const adjustmentColumns = `id, product_id, location_id, system_quantity, physical_quantity, delta,
	reason, attachment_url, status, flagged, created_by, created_at, processed_by, processed_at,
	COALESCE(resolution_comment, '')`

func scanAdjustment(row pgx.Row) (*entity.AdjustmentRequest, error) {
	var req entity.AdjustmentRequest
	err := row.Scan(
		&req.ID, &req.ProductID, &req.LocationID, &req.SystemQuantity, &req.PhysicalQuantity,
		&req.Delta, &req.Reason, &req.AttachmentURL, &req.Status, &req.Flagged,
		&req.CreatedBy, &req.CreatedAt, &req.ProcessedBy, &req.ProcessedAt, &req.ResolutionComment,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create persiste la solicitud en estado pending.
func (r *AdjustmentRequestRepo) Create(req *entity.AdjustmentRequest) error {
	query := `
		INSERT INTO stock_adjustment_request
			(id, product_id, location_id, system_quantity, physical_quantity, delta,
			 reason, attachment_url, status, flagged, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ProductID, req.LocationID, req.SystemQuantity, req.PhysicalQuantity,
		req.Delta, req.Reason, req.AttachmentURL, req.Status, req.Flagged,
		req.CreatedBy, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment request: %w", err)
	}
	return nil
}

// GetByID devuelve la solicitud o domain.ErrNotFound.
func (r *AdjustmentRequestRepo) GetByID(id string) (*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustment_request WHERE id = $1`
	req, err := scanAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get adjustment request: %w", err)
	}
	return req, nil
}

// GetForUpdate devuelve la solicitud bloqueada (SELECT FOR UPDATE) dentro de la tx.
func (r *AdjustmentRequestRepo) GetForUpdate(id string) (*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustment_request WHERE id = $1 FOR UPDATE`
	req, err := scanAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get adjustment request for update: %w", err)
	}
	return req, nil
}

// List devuelve la página filtrada de solicitudes, más reciente primero.
func (r *AdjustmentRequestRepo) List(filter repository.AdjustmentFilter) ([]*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustment_request WHERE 1=1`
	var args []any
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.Flagged != nil {
		query += fmt.Sprintf(" AND flagged = $%d", pos)
		args = append(args, *filter.Flagged)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustment requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdjustmentRequest
	for rows.Next() {
		req, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Resolve transiciona pending -> status. El WHERE sobre status = 'pending' es
// el compare-and-swap: dos aprobaciones concurrentes no pueden ganar ambas.
func (r *AdjustmentRequestRepo) Resolve(id, status, processedBy, comment string, processedAt time.Time, flagged bool) (bool, error) {
	query := `
		UPDATE stock_adjustment_request
		SET status = $2, processed_by = $3, processed_at = $4, resolution_comment = $5, flagged = $6
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(context.Background(), query, id, status, processedBy, processedAt, comment, flagged)
	if err != nil {
		return false, fmt.Errorf("resolve adjustment request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
