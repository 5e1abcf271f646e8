package stockchange

import (
	"context"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		stockRepo repository.StockRecordRepository,
		docRepo repository.ChangeDocumentRepository,
	) error) error
}

// PendingDocumentPDFGenerator genera el resumen imprimible de una sesión aún no enviada.
type PendingDocumentPDFGenerator interface {
	GeneratePendingDocumentPDF(ctx context.Context, session *entity.ChangeSession) ([]byte, error)
}
