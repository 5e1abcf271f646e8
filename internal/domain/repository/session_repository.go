package repository

import (
	"context"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

// SessionRepository guarda las sesiones en curso entre pantallas. Get devuelve (nil, nil) si no existe.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*entity.ChangeSession, error)
	Save(ctx context.Context, s *entity.ChangeSession) error
	Delete(ctx context.Context, id string) error
}
