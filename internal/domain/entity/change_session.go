package entity

import "time"

// Tipos de operación de cambio de stock.
const (
	OperationIssue             = "issue"             // salida miscelánea
	OperationIntersiteTransfer = "intersiteTransfer" // traslado entre plantas
	OperationStockChange       = "stockChange"       // cambio de stock por identificador
)

// ChangeSession sesión de un usuario construyendo un documento; se descarta al enviar o abandonar.
type ChangeSession struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Site      string       `json:"site"`
	CompanyID string       `json:"company_id"`
	UserID    string       `json:"user_id"`
	Lines     []ChangeLine `json:"lines"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SerialRange rango de seriales ya reservado (en líneas pendientes o en la lista de pantalla).
type SerialRange struct {
	Product string `json:"product"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// IsValidOperationKind indica si kind es uno de los tipos de operación conocidos.
func IsValidOperationKind(kind string) bool {
	switch kind {
	case OperationIssue, OperationIntersiteTransfer, OperationStockChange:
		return true
	}
	return false
}
