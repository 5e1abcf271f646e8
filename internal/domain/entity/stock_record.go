package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SerialNumberMode modo de gestión de números de serie del producto.
type SerialNumberMode string

// Modos de gestión de números de serie.
const (
	SerialModeNotManaged     SerialNumberMode = "notManaged"
	SerialModeIssued         SerialNumberMode = "issued"
	SerialModeReceivedIssued SerialNumberMode = "receivedIssued"
	// SerialModeGlobalReceivedIssued: los seriales se llevan como cantidad por tramo de stock,
	// no enumerados unidad por unidad.
	SerialModeGlobalReceivedIssued SerialNumberMode = "globalReceivedIssued"
)

// IsGlobal indica si los seriales se gestionan de forma global (por rangos).
func (m SerialNumberMode) IsGlobal() bool {
	return m == SerialModeGlobalReceivedIssued
}

// IsSerialized indica si el producto lleva números de serie.
func (m SerialNumberMode) IsSerialized() bool {
	return m != "" && m != SerialModeNotManaged
}

// PackingUnit unidad de empaque con su escala decimal.
type PackingUnit struct {
	Code             string `json:"code"`
	NumberOfDecimals int32  `json:"number_of_decimals"`
}

// Round trunca una cantidad mostrada a la escala de la unidad (nunca ofrece más de lo que hay).
func (u PackingUnit) Round(q decimal.Decimal) decimal.Decimal {
	if u.NumberOfDecimals < 0 {
		return q
	}
	return q.Truncate(u.NumberOfDecimals)
}

// StockRecord tramo físico de inventario tal como lo devuelve el almacén de datos.
// Es una instantánea inmutable durante una interacción de pantalla.
type StockRecord struct {
	StockID                                string
	Product                                string
	Site                                   string
	QuantityInPackingUnit                  decimal.Decimal
	QuantityInStockUnit                    decimal.Decimal
	PackingUnit                            PackingUnit
	PackingUnitToStockUnitConversionFactor decimal.Decimal
	StockUnit                              string
	Location                               string
	LicensePlateNumber                     string
	Lot                                    string
	Sublot                                 string
	Status                                 string
	SerialNumber                           string
	Identifier1                            string
	Identifier2                            string
	AllocatedQuantity                      decimal.Decimal // en unidad de stock, reservado por otros procesos
	SerialNumberManagementMode             SerialNumberMode
}

// Identity proyecta el registro sobre la tupla que compara el matcher.
func (r StockRecord) Identity() StockIdentity {
	return StockIdentity{
		PackingUnit:      r.PackingUnit.Code,
		ConversionFactor: r.PackingUnitToStockUnitConversionFactor,
		Location:         r.Location,
		LicensePlate:     r.LicensePlateNumber,
		Lot:              r.Lot,
		Sublot:           r.Sublot,
		Status:           r.Status,
		SerialNumber:     r.SerialNumber,
		Identifier1:      r.Identifier1,
		Identifier2:      r.Identifier2,
	}
}

// StockIdentity tupla de valores que identifica un mismo tramo físico de stock.
// No es una clave de base de datos: se recalcula en cada comparación.
type StockIdentity struct {
	PackingUnit      string
	ConversionFactor decimal.Decimal
	Location         string
	LicensePlate     string
	Lot              string
	Sublot           string
	Status           string
	SerialNumber     string
	Identifier1      string
	Identifier2      string
}

// Normalized devuelve la identidad con matrícula y estado normalizados (vacío = ausente).
func (id StockIdentity) Normalized() StockIdentity {
	id.LicensePlate = strings.TrimSpace(id.LicensePlate)
	id.Status = strings.TrimSpace(id.Status)
	return id
}
