package entity

import "time"

// Tipos de movimiento auditado.
const (
	MovementIngress     = "ingress"      // entrada de mercancía
	MovementEgress      = "egress"       // salida de mercancía
	MovementAdjustment  = "adjustment"   // conciliación por conteo físico
	MovementTransferOut = "transfer-out" // traslado, lado origen
	MovementTransferIn  = "transfer-in"  // traslado, lado destino
	MovementRejection   = "rejection"    // solicitud rechazada, sin delta de stock
)

// AuditRecord registro inmutable de un movimiento que afecta (o documenta) el
// ledger. Se escribe siempre en la misma transacción que la mutación de stock:
// o ambos quedan, o ninguno. Un traslado produce exactamente dos registros.
type AuditRecord struct {
	ID            string
	ProductID     string
	LocationID    string
	UserID        string // actor
	MovementType  string
	Quantity      int64 // magnitud del movimiento, siempre >= 0
	PreviousStock int64
	NewStock      int64
	Observations  string
	CreatedAt     time.Time
}
