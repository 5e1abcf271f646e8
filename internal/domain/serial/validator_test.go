package serial_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
)

// fakeCounter oráculo en memoria que registra las consultas recibidas.
type fakeCounter struct {
	count int64
	err   error
	calls []repository.SerialCountQuery
}

func (f *fakeCounter) CountSerialNumbers(_ context.Context, q repository.SerialCountQuery) (int64, error) {
	f.calls = append(f.calls, q)
	return f.count, f.err
}

func TestRangesOverlap(t *testing.T) {
	assert.True(t, serial.RangesOverlap("A010", "A020", "A015", "A025"))
	assert.True(t, serial.RangesOverlap("A015", "A025", "A010", "A020"))
	assert.True(t, serial.RangesOverlap("A010", "A020", "A020", "A030"), "extremo compartido")
	assert.True(t, serial.RangesOverlap("A010", "A020", "A012", "A013"), "contenido")
	assert.False(t, serial.RangesOverlap("A010", "A020", "A021", "A030"))
	assert.False(t, serial.RangesOverlap("A010", "A020", "B010", "B020"), "prefijo distinto")
	// Solo cuenta el valor numérico, no el ancho.
	assert.True(t, serial.RangesOverlap("X0999", "X1000", "X1000", "X1005"))
}

func TestValidateNoOverlap(t *testing.T) {
	existing := []serial.Range{{Start: "SN0001", End: "SN0005"}, {Start: "LP01", End: "LP09"}}

	err := serial.ValidateNoOverlap(serial.Range{Start: "SN0004", End: "SN0008"}, existing)
	assert.ErrorIs(t, err, domain.ErrSerialRangeOverlap)

	assert.NoError(t, serial.ValidateNoOverlap(serial.Range{Start: "SN0006", End: "SN0010"}, existing))
	assert.NoError(t, serial.ValidateNoOverlap(serial.Range{Start: "SN0006", End: "SN0010"}, nil))
}

func TestValidateSequentialCount(t *testing.T) {
	ctx := context.Background()
	q := repository.SerialCountQuery{Product: "P1", Site: "S1", StockID: "1", Start: "A01", End: "A05"}

	require.NoError(t, serial.ValidateSequentialCount(ctx, &fakeCounter{count: 5}, q, 5))

	err := serial.ValidateSequentialCount(ctx, &fakeCounter{count: 4}, q, 5)
	assert.ErrorIs(t, err, domain.ErrSerialNotSequential)

	boom := errors.New("backend caído")
	err = serial.ValidateSequentialCount(ctx, &fakeCounter{err: boom}, q, 5)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrSerialNotSequential)
}

func TestValidator_OrdenDeComprobaciones(t *testing.T) {
	ctx := context.Background()
	base := serial.RangeCheck{Product: "P1", Site: "S1", StockID: "10", Start: "SN0006", Count: 5}

	t.Run("inicial obligatorio", func(t *testing.T) {
		counter := &fakeCounter{count: 5}
		c := base
		c.Start = "  "
		_, err := serial.NewValidator(counter).Validate(ctx, c)
		assert.ErrorIs(t, err, domain.ErrSerialStartRequired)
		assert.Empty(t, counter.calls)
	})

	t.Run("superposición antes que tamaño", func(t *testing.T) {
		counter := &fakeCounter{count: 5}
		c := base
		c.Existing = []serial.Range{{Start: "SN0001", End: "SN0007"}}
		c.ExpectedEnd = "SN9999"
		_, err := serial.NewValidator(counter).Validate(ctx, c)
		assert.ErrorIs(t, err, domain.ErrSerialRangeOverlap)
		assert.Empty(t, counter.calls)
	})

	t.Run("tamaño del rango", func(t *testing.T) {
		counter := &fakeCounter{count: 5}
		c := base
		c.ExpectedEnd = "SN0011"
		_, err := serial.NewValidator(counter).Validate(ctx, c)
		assert.ErrorIs(t, err, domain.ErrSerialRangeSizeMismatch)
		assert.Empty(t, counter.calls)
	})

	t.Run("no secuencial", func(t *testing.T) {
		counter := &fakeCounter{count: 3}
		_, err := serial.NewValidator(counter).Validate(ctx, base)
		assert.ErrorIs(t, err, domain.ErrSerialNotSequential)
		require.Len(t, counter.calls, 1)
		assert.Equal(t, "SN0010", counter.calls[0].End)
	})

	t.Run("válido", func(t *testing.T) {
		counter := &fakeCounter{count: 5}
		c := base
		c.ExpectedEnd = "SN0010"
		rng, err := serial.NewValidator(counter).Validate(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, serial.Range{Start: "SN0006", End: "SN0010"}, rng)
		require.Len(t, counter.calls, 1)
		assert.Equal(t, repository.SerialCountQuery{Product: "P1", Site: "S1", StockID: "10", Start: "SN0006", End: "SN0010"}, counter.calls[0])
	})
}
