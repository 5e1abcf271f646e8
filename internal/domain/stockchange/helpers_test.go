package stockchange_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertDecimal compara por valor (12 == 12.000).
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "se esperaba %s, se obtuvo %s %v", want, got.String(), msgAndArgs)
}

// caseRecord 100 cajas (CS) de 12 unidades (EA), sin reservas.
func caseRecord() entity.StockRecord {
	return entity.StockRecord{
		StockID:                                "4711",
		Product:                                "BOLT-M8",
		Site:                                   "FR011",
		QuantityInPackingUnit:                  dec("100"),
		QuantityInStockUnit:                    dec("1200"),
		PackingUnit:                            entity.PackingUnit{Code: "CS", NumberOfDecimals: 0},
		PackingUnitToStockUnitConversionFactor: dec("12"),
		StockUnit:                              "EA",
		Location:                               "A-01-02",
		Lot:                                    "L2024",
		Status:                                 "A",
		SerialNumberManagementMode:             entity.SerialModeNotManaged,
	}
}

// serialRecord 10 unidades de un producto con seriales de gestión global.
func serialRecord() entity.StockRecord {
	return entity.StockRecord{
		StockID:                                "900",
		Product:                                "SCANNER-X",
		Site:                                   "FR011",
		QuantityInPackingUnit:                  dec("10"),
		QuantityInStockUnit:                    dec("10"),
		PackingUnit:                            entity.PackingUnit{Code: "UN"},
		PackingUnitToStockUnitConversionFactor: dec("1"),
		StockUnit:                              "UN",
		Location:                               "B-07",
		Status:                                 "A",
		SerialNumberManagementMode:             entity.SerialModeGlobalReceivedIssued,
	}
}

type fakeCounter struct {
	count func(q repository.SerialCountQuery) int64
	err   error
	calls int
}

func (f *fakeCounter) CountSerialNumbers(_ context.Context, q repository.SerialCountQuery) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.count(q), nil
}

// exactCounter oráculo que confirma cualquier rango completo de seriales.
func exactCounter() *fakeCounter {
	return &fakeCounter{count: func(q repository.SerialCountQuery) int64 {
		n, _ := countRange(q.Start, q.End)
		return n
	}}
}
