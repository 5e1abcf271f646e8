package stockchange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
	"github.com/jhoicas/stockchange-api/internal/domain/stockchange"
)

func countRange(start, end string) (int64, error) { return serial.Count(start, end) }

// Escenario: 100 CS (factor 12), se mueven 30 y luego se intenta asignar 80 más.
func TestLedger_EscenarioCajas(t *testing.T) {
	r := caseRecord()
	var lines []entity.ChangeLine

	assertDecimal(t, "100", stockchange.RemainingQuantity(r, lines, 1))
	assertDecimal(t, "100", stockchange.QuantityToMove(r, lines, 1))

	lines, err := stockchange.Select(lines, stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec("30")})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].StockDetails, 1)
	assertDecimal(t, "360", lines[0].StockDetails[0].QuantityInStockUnit)
	assertDecimal(t, "30", lines[0].QuantityInPackingUnit)

	assertDecimal(t, "70", stockchange.RemainingQuantity(r, lines, 1))
	assertDecimal(t, "100", stockchange.EntryLimitQuantity(r, lines, 1), "la edición libera el detalle propio")

	_, err = stockchange.Allocate(lines, stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec("80")})
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsRemaining)
	assertDecimal(t, "70", stockchange.ClampToRemaining(r, lines, 1, dec("80")))

	lines, err = stockchange.Allocate(lines, stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec("70")})
	require.NoError(t, err)
	assertDecimal(t, "0", stockchange.RemainingQuantity(r, lines, 1))
	assertDecimal(t, "100", lines[0].QuantityInPackingUnit)
	require.Len(t, lines[0].StockDetails, 1, "la asignación acumula sobre el mismo detalle")
}

func TestLedger_Idempotente(t *testing.T) {
	r := caseRecord()
	lines, err := stockchange.Select(nil, stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec("12")})
	require.NoError(t, err)

	a := stockchange.RemainingStockQuantity(r, lines, 1)
	b := stockchange.RemainingStockQuantity(r, lines, 1)
	assert.True(t, a.Equal(b))
	assertDecimal(t, "1056", a)
}

// Lo asignado se descuenta en unidad de stock aunque cambie la unidad de empaque activa.
func TestLedger_CambioDeUnidad(t *testing.T) {
	r := caseRecord()
	lines, err := stockchange.Select(nil, stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec("30")})
	require.NoError(t, err)
	before := stockchange.RemainingStockQuantity(r, lines, 1)

	each := entity.PackingUnit{Code: "EA"}
	lines, err = stockchange.Allocate(lines, stockchange.Selection{
		OperationKey: 1, Record: r, Quantity: dec("24"), PackingUnit: &each, ConversionFactor: dec("1"),
	})
	require.NoError(t, err)

	after := stockchange.RemainingStockQuantity(r, lines, 1)
	assertDecimal(t, "24", before.Sub(after))
	assertDecimal(t, "68", stockchange.RemainingQuantity(r, lines, 1))

	// La línea se muestra en la unidad activa (EA), derivada de la suma en unidad de stock.
	assert.Equal(t, "EA", lines[0].PackingUnit.Code)
	assertDecimal(t, "384", lines[0].QuantityInPackingUnit)
	assertDecimal(t, "384", lines[0].QuantityInStockUnit)
}

func TestLedger_OtrasOperacionesYReservas(t *testing.T) {
	r := caseRecord()
	lines, err := stockchange.Select(nil, stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec("30")})
	require.NoError(t, err)

	// La operación 2 ve lo consumido por la 1 como reducción del origen.
	assertDecimal(t, "70", stockchange.OriginQuantity(r, lines, 2))
	assertDecimal(t, "70", stockchange.RemainingQuantity(r, lines, 2))
	assertDecimal(t, "100", stockchange.OriginQuantity(r, lines, 1))
	assertDecimal(t, "70", stockchange.QuantityToMove(r, lines, 2))
	assertDecimal(t, "30", stockchange.QuantityToMove(r, lines, 1))

	r.AllocatedQuantity = dec("120")
	assertDecimal(t, "60", stockchange.OriginQuantity(r, lines, 2))
	assertDecimal(t, "90", stockchange.OriginQuantity(r, lines, 1))
	assertDecimal(t, "60", stockchange.RemainingQuantity(r, lines, 1))
}

func TestLedger_TruncaALaEscala(t *testing.T) {
	r := caseRecord()
	r.AllocatedQuantity = dec("5") // 1195 EA = 99.58 CS
	assertDecimal(t, "99", stockchange.RemainingQuantity(r, nil, 1))

	r.PackingUnit.NumberOfDecimals = 2
	assertDecimal(t, "99.58", stockchange.RemainingQuantity(r, nil, 1))
}

func TestLedger_NuncaNegativo(t *testing.T) {
	r := caseRecord()
	r.AllocatedQuantity = dec("2000")
	assertDecimal(t, "0", stockchange.RemainingQuantity(r, nil, 1))
	assertDecimal(t, "0", stockchange.QuantityToMove(r, nil, 1))
}
