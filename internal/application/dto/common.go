package dto

// ErrorResponse cuerpo de error HTTP. Code es estable (p. ej. SERIAL_RANGE_OVERLAP); Message es para el usuario.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
