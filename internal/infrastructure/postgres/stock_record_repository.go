package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo tramos de stock sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `
	stock_id, product, site, quantity_in_packing_unit, quantity_in_stock_unit,
	packing_unit, packing_unit_decimals, conversion_factor, stock_unit,
	location, license_plate_number, lot, sublot, status, serial_number,
	identifier1, identifier2, allocated_quantity, serial_number_mode`

// GetByID obtiene el tramo de stock; domain.ErrNotFound si no existe.
func (r *StockRecordRepo) GetByID(ctx context.Context, stockID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE stock_id = $1`
	s, err := scanStockRecord(r.q.QueryRow(ctx, query, stockID))
	if err != nil {
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el tramo y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRecordRepo) GetForUpdate(ctx context.Context, stockID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE stock_id = $1 FOR UPDATE`
	s, err := scanStockRecord(r.q.QueryRow(ctx, query, stockID))
	if err != nil {
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return s, nil
}

// AddAllocated suma qty a allocated_quantity.
func (r *StockRecordRepo) AddAllocated(ctx context.Context, stockID string, qty decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_records SET allocated_quantity = allocated_quantity + $2, updated_at = now() WHERE stock_id = $1`,
		stockID, qty)
	if err != nil {
		return fmt.Errorf("add allocated quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	var mode string
	err := row.Scan(
		&s.StockID, &s.Product, &s.Site, &s.QuantityInPackingUnit, &s.QuantityInStockUnit,
		&s.PackingUnit.Code, &s.PackingUnit.NumberOfDecimals, &s.PackingUnitToStockUnitConversionFactor, &s.StockUnit,
		&s.Location, &s.LicensePlateNumber, &s.Lot, &s.Sublot, &s.Status, &s.SerialNumber,
		&s.Identifier1, &s.Identifier2, &s.AllocatedQuantity, &mode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.SerialNumberManagementMode = entity.SerialNumberMode(mode)
	return &s, nil
}
