package stockchange_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
	"github.com/jhoicas/stockchange-api/internal/domain/stockchange"
)

func rangeRequest(r entity.StockRecord, start string, qty string) stockchange.SerialRangeRequest {
	return stockchange.SerialRangeRequest{
		Selection:      stockchange.Selection{OperationKey: 1, Record: r, Quantity: dec(qty)},
		StartingSerial: start,
	}
}

// Escenario: producto serial global, stock 10; SN0001-SN0005 y luego SN0004-SN0008.
func TestAddSerialRange_Escenario(t *testing.T) {
	ctx := context.Background()
	r := serialRecord()
	counter := exactCounter()
	v := serial.NewValidator(counter)

	lines, err := stockchange.AddSerialRange(ctx, nil, rangeRequest(r, "SN0001", "5"), v)
	require.NoError(t, err)
	require.Len(t, lines[0].StockDetails, 1)
	d := lines[0].StockDetails[0]
	assert.Equal(t, "SN0001", d.SerialNumber)
	assert.Equal(t, "SN0005", d.EndingSerialNumber)
	assertDecimal(t, "5", d.QuantityInStockUnit)
	assert.Equal(t, 1, counter.calls)

	out, err := stockchange.AddSerialRange(ctx, lines, rangeRequest(r, "SN0004", "5"), v)
	assert.ErrorIs(t, err, domain.ErrSerialRangeOverlap)
	assert.Nil(t, out)
	assert.Equal(t, 1, counter.calls, "el oráculo no se consulta ante superposición")

	// Contiguo: se añade como detalle aparte, sin fusionar.
	lines, err = stockchange.AddSerialRange(ctx, lines, rangeRequest(r, "SN0006", "5"), v)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].StockDetails, 2)
	assertDecimal(t, "10", lines[0].QuantityInPackingUnit)
	assertDecimal(t, "0", stockchange.RemainingQuantity(r, lines, 1))

	_, err = stockchange.AddSerialRange(ctx, lines, rangeRequest(r, "SN0011", "1"), v)
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsRemaining)

	lines, err = stockchange.RemoveDetail(lines, 1, r.StockID, 1)
	require.NoError(t, err)
	assertDecimal(t, "5", lines[0].QuantityInPackingUnit)
	_, err = stockchange.RemoveDetail(lines, 1, r.StockID, 5)
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestAddSerialRange_Rechazos(t *testing.T) {
	ctx := context.Background()
	r := serialRecord()

	t.Run("producto sin gestión global", func(t *testing.T) {
		rec := caseRecord()
		_, err := stockchange.AddSerialRange(ctx, nil, rangeRequest(rec, "A1", "1"), serial.NewValidator(exactCounter()))
		assert.ErrorIs(t, err, domain.ErrSerialRangeNotAllowed)
	})

	t.Run("inicial vacío", func(t *testing.T) {
		_, err := stockchange.AddSerialRange(ctx, nil, rangeRequest(r, "", "2"), serial.NewValidator(exactCounter()))
		assert.ErrorIs(t, err, domain.ErrSerialStartRequired)
	})

	t.Run("cantidad fraccionaria", func(t *testing.T) {
		rec := r
		rec.PackingUnit.NumberOfDecimals = 2
		_, err := stockchange.AddSerialRange(ctx, nil, rangeRequest(rec, "SN0001", "1.5"), serial.NewValidator(exactCounter()))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("superposición con filas de pantalla", func(t *testing.T) {
		req := rangeRequest(r, "SN0002", "2")
		req.PendingRanges = []entity.SerialRange{{Product: r.Product, Start: "SN0001", End: "SN0003"}}
		_, err := stockchange.AddSerialRange(ctx, nil, req, serial.NewValidator(exactCounter()))
		assert.ErrorIs(t, err, domain.ErrSerialRangeOverlap)
	})

	t.Run("filas de otro producto no cuentan", func(t *testing.T) {
		req := rangeRequest(r, "SN0002", "2")
		req.PendingRanges = []entity.SerialRange{{Product: "OTRO", Start: "SN0001", End: "SN0003"}}
		_, err := stockchange.AddSerialRange(ctx, nil, req, serial.NewValidator(exactCounter()))
		assert.NoError(t, err)
	})

	t.Run("final esperado distinto", func(t *testing.T) {
		req := rangeRequest(r, "SN0001", "3")
		req.EndingSerial = "SN0004"
		_, err := stockchange.AddSerialRange(ctx, nil, req, serial.NewValidator(exactCounter()))
		assert.ErrorIs(t, err, domain.ErrSerialRangeSizeMismatch)
	})

	t.Run("huecos en el almacén", func(t *testing.T) {
		gaps := &fakeCounter{count: func(repository.SerialCountQuery) int64 { return 2 }}
		_, err := stockchange.AddSerialRange(ctx, nil, rangeRequest(r, "SN0001", "3"), serial.NewValidator(gaps))
		assert.ErrorIs(t, err, domain.ErrSerialNotSequential)
	})

	t.Run("fallo del oráculo", func(t *testing.T) {
		boom := errors.New("timeout")
		failing := &fakeCounter{err: boom}
		out, err := stockchange.AddSerialRange(ctx, nil, rangeRequest(r, "SN0001", "3"), serial.NewValidator(failing))
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, out)
	})
}

func TestReservedRanges(t *testing.T) {
	lines := []entity.ChangeLine{
		{Product: "P", StockDetails: []entity.StockDetail{
			{SerialNumber: "A01", EndingSerialNumber: "A05"},
			{SerialNumber: "A09"},
			{},
		}},
		{Product: "Q", StockDetails: []entity.StockDetail{{SerialNumber: "A01", EndingSerialNumber: "A99"}}},
	}
	assert.Equal(t, []serial.Range{{Start: "A01", End: "A05"}, {Start: "A09", End: "A09"}}, stockchange.ReservedRanges(lines, "P"))
	assert.Empty(t, stockchange.ReservedRanges(lines, "Z"))
}
