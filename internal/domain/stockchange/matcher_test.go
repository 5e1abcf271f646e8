package stockchange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/stockchange"
)

func baseIdentity() entity.StockIdentity {
	return entity.StockIdentity{
		PackingUnit:      "CS",
		ConversionFactor: dec("12"),
		Location:         "A-01-02",
		LicensePlate:     "LPN001",
		Lot:              "L1",
		Sublot:           "S1",
		Status:           "A",
		SerialNumber:     "SN01",
		Identifier1:      "ID1",
		Identifier2:      "ID2",
	}
}

func TestIsMatch_CampoPorCampo(t *testing.T) {
	mutations := map[string]func(*entity.StockIdentity){
		"unidad":     func(id *entity.StockIdentity) { id.PackingUnit = "PL" },
		"factor":     func(id *entity.StockIdentity) { id.ConversionFactor = dec("24") },
		"ubicación":  func(id *entity.StockIdentity) { id.Location = "A-01-03" },
		"matrícula":  func(id *entity.StockIdentity) { id.LicensePlate = "LPN002" },
		"lote":       func(id *entity.StockIdentity) { id.Lot = "L2" },
		"sublote":    func(id *entity.StockIdentity) { id.Sublot = "S2" },
		"estado":     func(id *entity.StockIdentity) { id.Status = "Q" },
		"serial":     func(id *entity.StockIdentity) { id.SerialNumber = "SN02" },
		"ident. 1":   func(id *entity.StockIdentity) { id.Identifier1 = "X" },
		"ident. 2":   func(id *entity.StockIdentity) { id.Identifier2 = "Y" },
		"sin cambio": func(*entity.StockIdentity) {},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			a := baseIdentity()
			b := baseIdentity()
			mutate(&b)
			want := name == "sin cambio"
			for _, mode := range []entity.SerialNumberMode{entity.SerialModeNotManaged, entity.SerialModeIssued, entity.SerialModeReceivedIssued} {
				assert.Equal(t, want, stockchange.IsMatch(mode, a, b), string(mode))
				assert.Equal(t, stockchange.IsMatch(mode, a, b), stockchange.IsMatch(mode, b, a), "simetría %s", mode)
			}
		})
	}
}

func TestIsMatch_GlobalIgnoraSerial(t *testing.T) {
	a := baseIdentity()
	b := baseIdentity()
	b.SerialNumber = "OTRO"
	assert.True(t, stockchange.IsMatch(entity.SerialModeGlobalReceivedIssued, a, b))
	assert.True(t, stockchange.IsMatch(entity.SerialModeGlobalReceivedIssued, b, a))
	assert.False(t, stockchange.IsMatch(entity.SerialModeReceivedIssued, a, b))

	b.Lot = "L9"
	assert.False(t, stockchange.IsMatch(entity.SerialModeGlobalReceivedIssued, a, b))
}

func TestIsMatch_Normalizacion(t *testing.T) {
	a := baseIdentity()
	a.LicensePlate = ""
	a.Status = "A"
	b := baseIdentity()
	b.LicensePlate = "  "
	b.Status = " A "
	b.ConversionFactor = dec("12.000")
	assert.True(t, stockchange.IsMatch(entity.SerialModeNotManaged, a, b))
	assert.True(t, stockchange.IsMatch(entity.SerialModeNotManaged, b, a))
}

func TestFindLineYDetail(t *testing.T) {
	r := caseRecord()
	lines, err := stockchange.Select(nil, stockchange.Selection{OperationKey: 3, Record: r, Quantity: dec("1")})
	assert.NoError(t, err)

	assert.Equal(t, 0, stockchange.FindLine(lines, r.StockID, 3))
	assert.Equal(t, -1, stockchange.FindLine(lines, r.StockID, 4))
	assert.Equal(t, -1, stockchange.FindLine(lines, "otro", 3))
	assert.Equal(t, 0, stockchange.FindDetail(lines[0], r.SerialNumberManagementMode, r.Identity()))

	other := r
	other.Lot = "L-OTRO"
	assert.Equal(t, -1, stockchange.FindDetail(lines[0], r.SerialNumberManagementMode, other.Identity()))
}
