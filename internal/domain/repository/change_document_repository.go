package repository

import (
	"context"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

// ChangeDocumentRepository persiste los documentos enviados.
type ChangeDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ChangeDocument) error
}
