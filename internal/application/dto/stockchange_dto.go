package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

// StartSessionRequest body de POST /api/stock-changes/sessions.
type StartSessionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=issue intersiteTransfer stockChange"`
	Site string `json:"site" validate:"required,max=5"`
}

// PackingUnitDTO unidad de empaque elegida en pantalla.
type PackingUnitDTO struct {
	Code             string `json:"code" validate:"required"`
	NumberOfDecimals int32  `json:"number_of_decimals" validate:"min=0,max=9"`
}

// DestinationDTO destino de la línea; los obligatorios dependen del tipo de operación.
type DestinationDTO struct {
	Site               string           `json:"site"`
	Location           string           `json:"location"`
	Status             string           `json:"status"`
	PackingUnit        *PackingUnitDTO  `json:"packing_unit"`
	ConversionFactor   *decimal.Decimal `json:"conversion_factor"`
	LicensePlateNumber string           `json:"license_plate_number"`
}

// ToEntity convierte el destino al del dominio.
func (d DestinationDTO) ToEntity() entity.Destination {
	out := entity.Destination{
		Site:                                   d.Site,
		Location:                               d.Location,
		Status:                                 d.Status,
		PackingUnitToStockUnitConversionFactor: d.ConversionFactor,
		LicensePlateNumber:                     d.LicensePlateNumber,
	}
	if d.PackingUnit != nil {
		out.PackingUnit = &entity.PackingUnit{Code: d.PackingUnit.Code, NumberOfDecimals: d.PackingUnit.NumberOfDecimals}
	}
	return out
}

// SelectionRequest body de select y allocate. Quantity en la unidad de empaque activa;
// si PackingUnit se omite se usa la del registro de stock.
type SelectionRequest struct {
	LineNumber       int             `json:"line_number" validate:"min=1"`
	StockID          string          `json:"stock_id" validate:"required"`
	Quantity         decimal.Decimal `json:"quantity"`
	PackingUnit      *PackingUnitDTO `json:"packing_unit"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	Destination      DestinationDTO  `json:"destination"`
}

// UnselectRequest body de POST .../unselect.
type UnselectRequest struct {
	LineNumber int    `json:"line_number" validate:"min=1"`
	StockID    string `json:"stock_id" validate:"required"`
}

// SerialRangeDTO fila de rango mostrada en pantalla.
type SerialRangeDTO struct {
	Product string `json:"product"`
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
}

// SerialRangeRequest body de POST .../serial-ranges.
type SerialRangeRequest struct {
	SelectionRequest
	StartingSerial string           `json:"starting_serial"`
	EndingSerial   string           `json:"ending_serial"`
	PendingRanges  []SerialRangeDTO `json:"pending_ranges" validate:"dive"`
}

// SessionResponse sesión en curso con sus líneas.
type SessionResponse struct {
	ID        string              `json:"id"`
	Kind      string              `json:"kind"`
	Site      string              `json:"site"`
	Lines     []entity.ChangeLine `json:"lines"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// QuantitiesResponse cantidades que la pantalla muestra para un stock (unidad de empaque del registro).
type QuantitiesResponse struct {
	StockID     string          `json:"stock_id"`
	LineNumber  int             `json:"line_number"`
	PackingUnit string          `json:"packing_unit"`
	Origin      decimal.Decimal `json:"origin"`
	Remaining   decimal.Decimal `json:"remaining"`
	// EntryLimit máximo aceptado al editar la selección: lo restante más el detalle que se sobrescribe.
	EntryLimit     decimal.Decimal `json:"entry_limit"`
	QuantityToMove decimal.Decimal `json:"quantity_to_move"`
}

// DocumentPayload documento enviado: líneas sin vacías y con sus rangos de seriales.
type DocumentPayload struct {
	ID          string              `json:"id"`
	SessionID   string              `json:"session_id"`
	Kind        string              `json:"kind"`
	Site        string              `json:"site"`
	Lines       []entity.ChangeLine `json:"lines"`
	SubmittedAt time.Time           `json:"submitted_at"`
}
