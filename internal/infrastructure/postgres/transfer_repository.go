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

var _ repository.InternalTransferRepository = (*InternalTransferRepo)(nil)

// InternalTransferRepo implementación PostgreSQL de traslados internos.
type InternalTransferRepo struct {
	q Querier
}

// NewInternalTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInternalTransferRepository(q Querier) *InternalTransferRepo {
	return &InternalTransferRepo{q: q}
}

const transferColumns = `id, product_id, quantity, origin_location_id, destination_location_id,
	reason, status, created_by, created_at, processed_by, processed_at,
	COALESCE(resolution_comment, '')`

func scanTransfer(row pgx.Row) (*entity.InternalTransfer, error) {
	var tr entity.InternalTransfer
	err := row.Scan(
		&tr.ID, &tr.ProductID, &tr.Quantity, &tr.OriginLocationID, &tr.DestinationLocationID,
		&tr.Reason, &tr.Status, &tr.CreatedBy, &tr.CreatedAt,
		&tr.ProcessedBy, &tr.ProcessedAt, &tr.ResolutionComment,
	)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

// Create persiste el traslado en estado pending.
func (r *InternalTransferRepo) Create(tr *entity.InternalTransfer) error {
	query := `
		INSERT INTO internal_transfer
			(id, product_id, quantity, origin_location_id, destination_location_id,
			 reason, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tr.ID, tr.ProductID, tr.Quantity, tr.OriginLocationID, tr.DestinationLocationID,
		tr.Reason, tr.Status, tr.CreatedBy, tr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create internal transfer: %w", err)
	}
	return nil
}

// GetByID devuelve el traslado o domain.ErrNotFound.
func (r *InternalTransferRepo) GetByID(id string) (*entity.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfer WHERE id = $1`
	tr, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get internal transfer: %w", err)
	}
	return tr, nil
}

// GetForUpdate devuelve el traslado bloqueado (SELECT FOR UPDATE) dentro de la tx.
func (r *InternalTransferRepo) GetForUpdate(id string) (*entity.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfer WHERE id = $1 FOR UPDATE`
	tr, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get internal transfer for update: %w", err)
	}
	return tr, nil
}

// List devuelve la página filtrada de traslados, más reciente primero.
func (r *InternalTransferRepo) List(filter repository.TransferFilter) ([]*entity.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfer WHERE 1=1`
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
	if filter.OriginID != "" {
		query += fmt.Sprintf(" AND origin_location_id = $%d", pos)
		args = append(args, filter.OriginID)
		pos++
	}
	if filter.DestinationID != "" {
		query += fmt.Sprintf(" AND destination_location_id = $%d", pos)
		args = append(args, filter.DestinationID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list internal transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.InternalTransfer
	for rows.Next() {
		tr, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan internal transfer: %w", err)
		}
		list = append(list, tr)
	}
	return list, rows.Err()
}

// Resolve transiciona pending -> status con compare-and-swap sobre el estado.
func (r *InternalTransferRepo) Resolve(id, status, processedBy, comment string, processedAt time.Time) (bool, error) {
	query := `
		UPDATE internal_transfer
		SET status = $2, processed_by = $3, processed_at = $4, resolution_comment = $5
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(context.Background(), query, id, status, processedBy, processedAt, comment)
	if err != nil {
		return false, fmt.Errorf("resolve internal transfer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
