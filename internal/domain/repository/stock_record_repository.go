package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

// StockRecordRepository puerto de lectura de tramos de stock y de sus reservas.
type StockRecordRepository interface {
	GetByID(ctx context.Context, stockID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo dentro de una transacción.
	GetForUpdate(ctx context.Context, stockID string) (*entity.StockRecord, error)
	// AddAllocated suma qty (unidad de stock) a la cantidad reservada del tramo.
	AddAllocated(ctx context.Context, stockID string, qty decimal.Decimal) error
}
