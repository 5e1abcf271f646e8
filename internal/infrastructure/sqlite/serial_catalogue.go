// Package sqlite catálogo local de números de serie para terminales sin conexión al servidor.
// Implementa el mismo oráculo de existencia que el repositorio PostgreSQL.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
)

var _ repository.SerialNumberCounter = (*SerialCatalogue)(nil)

// suffixWidth ancho fijo del sufijo guardado: con relleno de ceros el orden de texto es el numérico.
const suffixWidth = serial.MaxSuffixDigits

const schema = `
CREATE TABLE IF NOT EXISTS serial_numbers (
	product       TEXT NOT NULL,
	site          TEXT NOT NULL,
	stock_id      TEXT NOT NULL DEFAULT '',
	serial_number TEXT NOT NULL,
	prefix        TEXT NOT NULL,
	suffix        TEXT NOT NULL,
	PRIMARY KEY (product, site, serial_number)
);
CREATE INDEX IF NOT EXISTS idx_serial_numbers_range ON serial_numbers (product, site, prefix, suffix);`

// SerialCatalogue oráculo de existencia sobre un fichero SQLite.
type SerialCatalogue struct {
	db *sqlx.DB
}

// Open abre (o crea) el catálogo en path. ":memory:" sirve para pruebas.
func Open(path string) (*SerialCatalogue, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo de seriales: %w", err)
	}
	// Una sola conexión: con :memory: cada conexión sería otra base de datos.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear esquema del catálogo: %w", err)
	}
	return &SerialCatalogue{db: db}, nil
}

// Close cierra el catálogo.
func (c *SerialCatalogue) Close() error {
	return c.db.Close()
}

// SerialRow fila del catálogo.
type SerialRow struct {
	Product      string `db:"product"`
	Site         string `db:"site"`
	StockID      string `db:"stock_id"`
	SerialNumber string `db:"serial_number"`
}

// Insert carga seriales en el catálogo en una sola transacción. Rechaza sufijos de más de
// suffixWidth dígitos significativos.
func (c *SerialCatalogue) Insert(ctx context.Context, rows []SerialRow) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT OR REPLACE INTO serial_numbers (product, site, stock_id, serial_number, prefix, suffix)
		VALUES (?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PreparexContext(ctx, q)
	if err != nil {
		return fmt.Errorf("preparar inserción de seriales: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		prefix, digits, ok := serial.Split(r.SerialNumber)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrSerialWithoutNumericSuffix, r.SerialNumber)
		}
		if !serial.SuffixFits(digits) {
			return fmt.Errorf("%w: el sufijo de %q supera %d dígitos", domain.ErrInvalidInput, r.SerialNumber, suffixWidth)
		}
		if _, err := stmt.ExecContext(ctx, r.Product, r.Site, r.StockID, r.SerialNumber, prefix, padSuffix(digits)); err != nil {
			return fmt.Errorf("insertar serial %s: %w", r.SerialNumber, err)
		}
	}
	return tx.Commit()
}

// CountSerialNumbers cuenta los valores de sufijo distintos entre q.Start y q.End (inclusivo):
// A07 y A7 son el mismo serial. Un extremo de más de suffixWidth dígitos queda fuera de todo
// lo guardado, por encima en orden de texto igual que en valor.
func (c *SerialCatalogue) CountSerialNumbers(ctx context.Context, q repository.SerialCountQuery) (int64, error) {
	prefix, from, ok := serial.Split(q.Start)
	if !ok {
		return 0, nil
	}
	endPrefix, to, ok := serial.Split(q.End)
	if !ok || endPrefix != prefix {
		return 0, nil
	}
	const query = `
		SELECT count(DISTINCT suffix) FROM serial_numbers
		WHERE product = ? AND site = ? AND (? = '' OR stock_id = ?)
		  AND prefix = ? AND suffix BETWEEN ? AND ?`
	var n int64
	if err := c.db.GetContext(ctx, &n, query, q.Product, q.Site, q.StockID, q.StockID, prefix, padSuffix(from), padSuffix(to)); err != nil {
		return 0, fmt.Errorf("contar seriales en catálogo: %w", err)
	}
	return n, nil
}

// padSuffix normaliza el sufijo: sin ceros a la izquierda y rellenado a suffixWidth.
func padSuffix(digits string) string {
	d := strings.TrimLeft(digits, "0")
	if len(d) >= suffixWidth {
		return d
	}
	return strings.Repeat("0", suffixWidth-len(d)) + d
}
