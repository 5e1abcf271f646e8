package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

func TestDetailLabel(t *testing.T) {
	assert.Equal(t, "Ubic. B-07  ·  Seriales SN0001 → SN0005",
		detailLabel(entity.StockDetail{Location: "B-07", SerialNumber: "SN0001", EndingSerialNumber: "SN0005"}))
	assert.Equal(t, "Lote L1/S2  ·  Serial X9", detailLabel(entity.StockDetail{Lot: "L1", Sublot: "S2", SerialNumber: "X9"}))
	assert.Equal(t, "—", detailLabel(entity.StockDetail{}))
}

func TestDestinationLabel(t *testing.T) {
	assert.Equal(t, "FR022 / REC", destinationLabel(entity.Destination{Site: "FR022", Location: "REC"}))
	assert.Equal(t, "—", destinationLabel(entity.Destination{}))
}

func TestGeneratePendingDocumentPDF(t *testing.T) {
	s := &entity.ChangeSession{
		ID:   "3f1c5d2e-0000-0000-0000-000000000001",
		Kind: entity.OperationIntersiteTransfer,
		Site: "FR011",
		Lines: []entity.ChangeLine{{
			LineNumber:            1,
			StockID:               "900",
			Product:               "SCANNER-X",
			PackingUnit:           entity.PackingUnit{Code: "UN"},
			QuantityInPackingUnit: decimal.NewFromInt(5),
			QuantityInStockUnit:   decimal.NewFromInt(5),
			Destination:           entity.Destination{Site: "FR022", Location: "REC"},
			StockDetails: []entity.StockDetail{{
				SerialNumber:        "SN0001",
				EndingSerialNumber:  "SN0005",
				QuantityInStockUnit: decimal.NewFromInt(5),
				StockUnit:           "UN",
			}},
		}},
	}

	out, err := NewMarotoPDFGenerator().GeneratePendingDocumentPDF(context.Background(), s)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
