package audit

import (
	"context"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// Exporter puerto para serializar un conjunto filtrado de movimientos como
// archivo descargable. Implementado por pdf.AuditTrailExporter (maroto).
type Exporter interface {
	Render(records []*entity.AuditRecord) ([]byte, error)
}

// Límite duro de filas para el export: el mismo filtro paginado aplica, pero
// un export sin límite explícito no debe materializar la tabla entera.
const exportMaxRecords = 5000

// QueryUseCase consultas de solo lectura sobre el log de auditoría.
type QueryUseCase struct {
	auditRepo repository.AuditRecordRepository
	exporter  Exporter
}

// NewQueryUseCase construye el caso de uso de consultas de auditoría.
func NewQueryUseCase(auditRepo repository.AuditRecordRepository, exporter Exporter) *QueryUseCase {
	return &QueryUseCase{auditRepo: auditRepo, exporter: exporter}
}

// List devuelve la página filtrada de movimientos y el total sin paginar.
func (uc *QueryUseCase) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditRecord, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	records, err := uc.auditRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.auditRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Export serializa el mismo conjunto filtrado como PDF descargable.
func (uc *QueryUseCase) Export(ctx context.Context, filter repository.AuditFilter) ([]byte, error) {
	if filter.Limit <= 0 || filter.Limit > exportMaxRecords {
		filter.Limit = exportMaxRecords
	}
	records, err := uc.auditRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Render(records)
}
