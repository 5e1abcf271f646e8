package sqlite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	"github.com/jhoicas/stockchange-api/internal/infrastructure/sqlite"
)

func openCatalogue(t *testing.T) *sqlite.SerialCatalogue {
	t.Helper()
	c, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func seed(t *testing.T, c *sqlite.SerialCatalogue, serials ...string) {
	t.Helper()
	rows := make([]sqlite.SerialRow, 0, len(serials))
	for _, s := range serials {
		rows = append(rows, sqlite.SerialRow{Product: "SCANNER-X", Site: "FR011", StockID: "900", SerialNumber: s})
	}
	require.NoError(t, c.Insert(context.Background(), rows))
}

func TestSerialCatalogue_CuentaPorValor(t *testing.T) {
	c := openCatalogue(t)
	seed(t, c, "X997", "X998", "X999", "X1000", "X1001", "Y1000")

	n, err := c.CountSerialNumbers(context.Background(), repository.SerialCountQuery{
		Product: "SCANNER-X", Site: "FR011", StockID: "900", Start: "X998", End: "X1001",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n, "X1000 cae dentro del rango aunque ordene antes como texto")
}

func TestSerialCatalogue_Huecos(t *testing.T) {
	c := openCatalogue(t)
	seed(t, c, "SN0001", "SN0002", "SN0004", "SN0005")

	n, err := c.CountSerialNumbers(context.Background(), repository.SerialCountQuery{
		Product: "SCANNER-X", Site: "FR011", StockID: "900", Start: "SN0001", End: "SN0005",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestSerialCatalogue_FiltrosYPrefijos(t *testing.T) {
	c := openCatalogue(t)
	seed(t, c, "SN0001", "SN0002")
	ctx := context.Background()

	n, err := c.CountSerialNumbers(ctx, repository.SerialCountQuery{Product: "SCANNER-X", Site: "FR022", Start: "SN0001", End: "SN0002"})
	require.NoError(t, err)
	assert.Zero(t, n, "otra planta")

	n, err = c.CountSerialNumbers(ctx, repository.SerialCountQuery{Product: "SCANNER-X", Site: "FR011", Start: "SN0001", End: "SN0002"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "sin stock se cuenta toda la planta")

	n, err = c.CountSerialNumbers(ctx, repository.SerialCountQuery{Product: "SCANNER-X", Site: "FR011", Start: "SN0001", End: "AB0002"})
	require.NoError(t, err)
	assert.Zero(t, n, "prefijos distintos")
}

func TestSerialCatalogue_InsertRechazaSinDigitos(t *testing.T) {
	c := openCatalogue(t)
	err := c.Insert(context.Background(), []sqlite.SerialRow{{Product: "P", Site: "S", SerialNumber: "ABC"}})
	assert.ErrorIs(t, err, domain.ErrSerialWithoutNumericSuffix)
}

func TestSerialCatalogue_RellenoDistintoCuentaUnaVez(t *testing.T) {
	c := openCatalogue(t)
	seed(t, c, "A7", "A07", "A8")

	n, err := c.CountSerialNumbers(context.Background(), repository.SerialCountQuery{
		Product: "SCANNER-X", Site: "FR011", Start: "A07", End: "A08",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSerialCatalogue_InsertRechazaSufijoLargo(t *testing.T) {
	c := openCatalogue(t)
	long := "SN" + strings.Repeat("9", 41)
	err := c.Insert(context.Background(), []sqlite.SerialRow{{Product: "P", Site: "S", SerialNumber: long}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Los ceros a la izquierda no cuentan.
	padded := "SN00" + strings.Repeat("9", 40)
	require.NoError(t, c.Insert(context.Background(), []sqlite.SerialRow{{Product: "P", Site: "S", SerialNumber: padded}}))
	n, err := c.CountSerialNumbers(context.Background(), repository.SerialCountQuery{
		Product: "P", Site: "S", Start: padded, End: "SN" + strings.Repeat("9", 41),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
