package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

var _ repository.AuditRecordRepository = (*AuditRecordRepo)(nil)

// AuditRecordRepo implementación append-only del log de auditoría
// (usable con pool o tx; las escrituras siempre llegan vía tx).
type AuditRecordRepo struct {
	q Querier
}

// NewAuditRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRecordRepository(q Querier) *AuditRecordRepo {
	return &AuditRecordRepo{q: q}
}

// Create persiste un registro de auditoría. No existe Update ni Delete.
func (r *AuditRecordRepo) Create(rec *entity.AuditRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_audit (id, product_id, location_id, user_id, movement_type, quantity, previous_stock, new_stock, observations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	userID := (*string)(nil)
	if rec.UserID != "" {
		userID = &rec.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.LocationID, userID, rec.MovementType,
		rec.Quantity, rec.PreviousStock, rec.NewStock, rec.Observations, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit record: %w", err)
	}
	return nil
}

// List devuelve la página filtrada de movimientos, más reciente primero.
func (r *AuditRecordRepo) List(filter repository.AuditFilter) ([]*entity.AuditRecord, error) {
	query := `
		SELECT id, product_id, location_id, COALESCE(user_id, ''), movement_type, quantity, previous_stock, new_stock, observations, created_at
		FROM inventory_audit WHERE 1=1`
	query, args := appendAuditFilters(query, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditRecord
	for rows.Next() {
		var rec entity.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.LocationID, &rec.UserID,
			&rec.MovementType, &rec.Quantity, &rec.PreviousStock, &rec.NewStock,
			&rec.Observations, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Count total de movimientos que cumplen el filtro (para paginación).
func (r *AuditRecordRepo) Count(filter repository.AuditFilter) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_audit WHERE 1=1`
	query, args := appendAuditFilters(query, filter)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count audit records: %w", err)
	}
	return total, nil
}

// appendAuditFilters arma las cláusulas WHERE compartidas por List y Count.
func appendAuditFilters(query string, filter repository.AuditFilter) (string, []any) {
	var args []any
	pos := 1
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.DateFrom)
		pos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.DateTo)
		pos++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
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
	if filter.MovementType != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", pos)
		args = append(args, filter.MovementType)
		pos++
	}
	return query, args
}
