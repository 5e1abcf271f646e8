package entity

import "time"

// ChangeDocument documento resultante de enviar una sesión: las líneas ya no se editan.
type ChangeDocument struct {
	ID          string
	SessionID   string
	Kind        string
	Site        string
	CompanyID   string
	UserID      string
	Lines       []ChangeLine
	SubmittedAt time.Time
}
