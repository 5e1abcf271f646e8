package repository

import "context"

// SerialCountQuery parámetros de la consulta de existencia de seriales (extremos inclusivos).
type SerialCountQuery struct {
	Product string
	Site    string
	StockID string
	Start   string
	End     string
}

// SerialNumberCounter puerto del oráculo de existencia: cuántos números de serie existen realmente
// en el almacén para producto/planta/stock entre Start y End.
type SerialNumberCounter interface {
	CountSerialNumbers(ctx context.Context, q SerialCountQuery) (int64, error)
}
