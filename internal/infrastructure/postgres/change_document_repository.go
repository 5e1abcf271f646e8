package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
)

var _ repository.ChangeDocumentRepository = (*ChangeDocumentRepo)(nil)

// ChangeDocumentRepo documentos enviados; las líneas se guardan como JSONB.
type ChangeDocumentRepo struct {
	q Querier
}

// NewChangeDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChangeDocumentRepository(q Querier) *ChangeDocumentRepo {
	return &ChangeDocumentRepo{q: q}
}

// Create inserta el documento. Una sesión solo puede enviarse una vez (domain.ErrConflict).
func (r *ChangeDocumentRepo) Create(ctx context.Context, doc *entity.ChangeDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	lines, err := json.Marshal(doc.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	query := `
		INSERT INTO stock_change_documents (id, session_id, kind, site, company_id, user_id, lines, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		doc.ID, doc.SessionID, doc.Kind, doc.Site, doc.CompanyID, doc.UserID, lines, doc.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create stock change document: %w", err)
	}
	return nil
}
