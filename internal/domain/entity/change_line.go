package entity

import "github.com/shopspring/decimal"

// ChangeLine línea del documento en curso (salida, traslado o cambio de stock).
// LineNumber es la clave de correlación de la operación, no necesariamente el número final de línea.
type ChangeLine struct {
	LineNumber                             int             `json:"line_number"`
	StockID                                string          `json:"stock_id"`
	Product                                string          `json:"product"`
	PackingUnit                            PackingUnit     `json:"packing_unit"`
	PackingUnitToStockUnitConversionFactor decimal.Decimal `json:"packing_unit_to_stock_unit_conversion_factor"`
	// Derivadas de StockDetails; nunca se editan a mano.
	QuantityInPackingUnit decimal.Decimal `json:"quantity_in_packing_unit"`
	QuantityInStockUnit   decimal.Decimal `json:"quantity_in_stock_unit"`
	Destination           Destination     `json:"destination"`
	StockDetails          []StockDetail   `json:"stock_details"`
}

// Destination campos de destino cuando la operación tiene destino.
type Destination struct {
	Site                                   string           `json:"site,omitempty"`
	Location                               string           `json:"location,omitempty"`
	Status                                 string           `json:"status,omitempty"`
	PackingUnit                            *PackingUnit     `json:"packing_unit,omitempty"`
	PackingUnitToStockUnitConversionFactor *decimal.Decimal `json:"packing_unit_to_stock_unit_conversion_factor,omitempty"`
	LicensePlateNumber                     string           `json:"license_plate_number,omitempty"`
}

// IsEmpty indica que no se informó ningún campo de destino.
func (d Destination) IsEmpty() bool {
	return d.Site == "" && d.Location == "" && d.Status == "" &&
		d.PackingUnit == nil && d.LicensePlateNumber == ""
}

// StockDetail tramo asignado dentro de una ChangeLine.
// Con EndingSerialNumber representa un bloque contiguo y ascendente de seriales.
type StockDetail struct {
	PackingUnit                            PackingUnit     `json:"packing_unit"`
	PackingUnitToStockUnitConversionFactor decimal.Decimal `json:"packing_unit_to_stock_unit_conversion_factor"`
	QuantityInPackingUnit                  decimal.Decimal `json:"quantity_in_packing_unit"`
	QuantityInStockUnit                    decimal.Decimal `json:"quantity_in_stock_unit"`
	Location                               string          `json:"location,omitempty"`
	Status                                 string          `json:"status,omitempty"`
	Lot                                    string          `json:"lot,omitempty"`
	Sublot                                 string          `json:"sublot,omitempty"`
	SerialNumber                           string          `json:"serial_number,omitempty"`
	EndingSerialNumber                     string          `json:"ending_serial_number,omitempty"`
	Identifier1                            string          `json:"identifier1,omitempty"`
	Identifier2                            string          `json:"identifier2,omitempty"`
	LicensePlateNumber                     string          `json:"license_plate_number,omitempty"`
	StockUnit                              string          `json:"stock_unit,omitempty"`
}

// Identity proyecta el detalle sobre la tupla que compara el matcher.
func (d StockDetail) Identity() StockIdentity {
	return StockIdentity{
		PackingUnit:      d.PackingUnit.Code,
		ConversionFactor: d.PackingUnitToStockUnitConversionFactor,
		Location:         d.Location,
		LicensePlate:     d.LicensePlateNumber,
		Lot:              d.Lot,
		Sublot:           d.Sublot,
		Status:           d.Status,
		SerialNumber:     d.SerialNumber,
		Identifier1:      d.Identifier1,
		Identifier2:      d.Identifier2,
	}
}

// IsRange indica si el detalle representa un rango de seriales.
func (d StockDetail) IsRange() bool {
	return d.EndingSerialNumber != ""
}

// Clone copia la línea con su propio slice de detalles.
func (l ChangeLine) Clone() ChangeLine {
	c := l
	c.StockDetails = append([]StockDetail(nil), l.StockDetails...)
	return c
}
