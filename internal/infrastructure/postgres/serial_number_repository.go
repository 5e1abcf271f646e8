package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
)

var _ repository.SerialNumberCounter = (*SerialNumberRepo)(nil)

// SerialNumberRepo oráculo de existencia de seriales sobre la tabla serial_numbers.
// Cada serial se guarda partido en prefijo + sufijo numérico, así el rango se compara por valor
// (X999..X1000) y no lexicográficamente.
type SerialNumberRepo struct {
	q Querier
}

// NewSerialNumberRepository construye el adaptador.
func NewSerialNumberRepository(q Querier) *SerialNumberRepo {
	return &SerialNumberRepo{q: q}
}

// CountSerialNumbers cuenta los valores de sufijo distintos entre q.Start y q.End (inclusivo):
// A07 y A7 son el mismo serial.
func (r *SerialNumberRepo) CountSerialNumbers(ctx context.Context, q repository.SerialCountQuery) (int64, error) {
	prefix, from, ok := serial.Split(q.Start)
	if !ok {
		return 0, nil
	}
	endPrefix, to, ok := serial.Split(q.End)
	if !ok || endPrefix != prefix {
		return 0, nil
	}
	query := `
		SELECT count(DISTINCT suffix) FROM serial_numbers
		WHERE product = $1 AND site = $2 AND ($3 = '' OR stock_id = $3)
		  AND prefix = $4 AND suffix BETWEEN $5::numeric AND $6::numeric`
	var n int64
	if err := r.q.QueryRow(ctx, query, q.Product, q.Site, q.StockID, prefix, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count serial numbers: %w", err)
	}
	return n, nil
}
