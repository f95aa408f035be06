package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

var _ repository.StockLineRepository = (*StockLineRepo)(nil)

// StockLineRepo implementación de StockLineRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLineRepo struct {
	q Querier
}

// NewStockLineRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLineRepository(q Querier) *StockLineRepo {
	return &StockLineRepo{q: q}
}

// Get obtiene la fila de stock; ausente se lee como cantidad 0.
func (r *StockLineRepo) Get(productID, locationID string) (*entity.StockLine, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND location_id = $2`
	var s entity.StockLine
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLine{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock line: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la fila y la bloquea para update (SELECT FOR UPDATE).
func (r *StockLineRepo) GetForUpdate(productID, locationID string) (*entity.StockLine, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.StockLine
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLine{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock line for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y ubicación).
func (r *StockLineRepo) Upsert(line *entity.StockLine) error {
	query := `
		INSERT INTO inventory (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		line.ProductID, line.LocationID, line.Quantity, line.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock line: %w", err)
	}
	return nil
}

// SumByProduct suma el stock del producto en todas las ubicaciones.
func (r *StockLineRepo) SumByProduct(productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}

// ListByProduct desglose por ubicación (solo filas con cantidad > 0).
func (r *StockLineRepo) ListByProduct(productID string) ([]*entity.StockLine, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND quantity > 0
		ORDER BY location_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLine
	for rows.Next() {
		var s entity.StockLine
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock line: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalAtLocationForUpdate suma el stock de la ubicación bloqueando las filas,
// para que el chequeo de capacidad vea un snapshot consistente.
func (r *StockLineRepo) TotalAtLocationForUpdate(locationID string) (int64, error) {
	// El SUM no admite FOR UPDATE directo: se bloquean las filas en una
	// subconsulta y se suma afuera.
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM (
			SELECT quantity FROM inventory WHERE location_id = $1 FOR UPDATE
		) locked`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, locationID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock at location: %w", err)
	}
	return total, nil
}
