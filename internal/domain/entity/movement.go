package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementKindIn  = "IN"  // entrada: suma al stock
	MovementKindOut = "OUT" // salida: resta del stock
	MovementKindAdj = "ADJ" // ajuste: fija el stock a un valor absoluto
)

// ValidMovementKind verifica que el tipo sea IN, OUT o ADJ.
func ValidMovementKind(kind string) bool {
	return kind == MovementKindIn || kind == MovementKindOut || kind == MovementKindAdj
}

// Movement entrada del libro de movimientos de stock. Inmutable una vez
// creada: no existe camino de actualización ni borrado.
// OperationID es la clave de idempotencia (única cuando está presente).
type Movement struct {
	ID          string
	ProductID   string
	Kind        string // IN, OUT, ADJ
	Quantity    int    // para ADJ es el valor absoluto al que queda el stock
	Notes       string
	UserID      string // vacío si la operación es del sistema
	OperationID string
	PerformedAt time.Time // fecha efectiva, informativa (la aporta el caller o se usa la del registro)
	CreatedAt   time.Time
}
