// Package stockchange orquesta las sesiones de salida, traslado y cambio de stock:
// carga el registro de stock, aplica el motor de líneas y persiste la sesión.
package stockchange

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/application/dto"
	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
	engine "github.com/jhoicas/stockchange-api/internal/domain/stockchange"
	"github.com/jhoicas/stockchange-api/pkg/logger"
)

// UseCase casos de uso de la sesión de cambio de stock.
type UseCase struct {
	sessions  repository.SessionRepository
	stocks    repository.StockRecordRepository
	validator *serial.Validator
	txRunner  TxRunner
	pdf       PendingDocumentPDFGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. counter es el oráculo de existencia de seriales.
func NewUseCase(
	sessions repository.SessionRepository,
	stocks repository.StockRecordRepository,
	counter repository.SerialNumberCounter,
	txRunner TxRunner,
	pdf PendingDocumentPDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		sessions:  sessions,
		stocks:    stocks,
		validator: serial.NewValidator(counter),
		txRunner:  txRunner,
		pdf:       pdf,
		log:       log.Component("stockchange"),
		now:       time.Now,
	}
}

// StartSession abre una sesión vacía para la planta y el tipo de operación.
func (uc *UseCase) StartSession(ctx context.Context, companyID, userID string, in dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if !entity.IsValidOperationKind(in.Kind) || in.Site == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	sess := &entity.ChangeSession{
		ID:        uuid.New().String(),
		Kind:      in.Kind,
		Site:      in.Site,
		CompanyID: companyID,
		UserID:    userID,
		Lines:     []entity.ChangeLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	uc.log.Debug().Str("session_id", sess.ID).Str("kind", sess.Kind).Str("site", sess.Site).Msg("sesión de cambio abierta")
	return toSessionResponse(sess), nil
}

// GetSession devuelve la sesión con sus líneas pendientes.
func (uc *UseCase) GetSession(ctx context.Context, companyID, id string) (*dto.SessionResponse, error) {
	sess, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(sess), nil
}

// DeleteSession abandona la sesión sin generar documento.
func (uc *UseCase) DeleteSession(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	if err := uc.sessions.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Debug().Str("session_id", id).Msg("sesión de cambio descartada")
	return nil
}

// Select registra o sobrescribe la cantidad elegida de un stock.
func (uc *UseCase) Select(ctx context.Context, companyID, id string, in dto.SelectionRequest) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, companyID, id, "select", func(sess *entity.ChangeSession) ([]entity.ChangeLine, error) {
		sel, err := uc.selection(ctx, sess, in)
		if err != nil {
			return nil, err
		}
		return engine.Select(sess.Lines, sel)
	})
}

// Allocate suma la cantidad a lo ya elegido para el stock (escaneo repetido).
func (uc *UseCase) Allocate(ctx context.Context, companyID, id string, in dto.SelectionRequest) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, companyID, id, "allocate", func(sess *entity.ChangeSession) ([]entity.ChangeLine, error) {
		sel, err := uc.selection(ctx, sess, in)
		if err != nil {
			return nil, err
		}
		return engine.Allocate(sess.Lines, sel)
	})
}

// Unselect quita el stock de la operación y descarta las líneas que quedan vacías.
func (uc *UseCase) Unselect(ctx context.Context, companyID, id string, in dto.UnselectRequest) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, companyID, id, "unselect", func(sess *entity.ChangeSession) ([]entity.ChangeLine, error) {
		rec, err := uc.record(ctx, sess, in.StockID)
		if err != nil {
			return nil, err
		}
		return engine.PruneEmptyLines(engine.Unselect(sess.Lines, in.LineNumber, *rec)), nil
	})
}

// AddSerialRange valida un rango de seriales contra las reservas y el oráculo y lo añade a la línea.
func (uc *UseCase) AddSerialRange(ctx context.Context, companyID, id string, in dto.SerialRangeRequest) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, companyID, id, "serial-range", func(sess *entity.ChangeSession) ([]entity.ChangeLine, error) {
		sel, err := uc.selection(ctx, sess, in.SelectionRequest)
		if err != nil {
			return nil, err
		}
		pending := make([]entity.SerialRange, 0, len(in.PendingRanges))
		for _, p := range in.PendingRanges {
			pending = append(pending, entity.SerialRange{Product: p.Product, Start: p.Start, End: p.End})
		}
		return engine.AddSerialRange(ctx, sess.Lines, engine.SerialRangeRequest{
			Selection:      sel,
			StartingSerial: in.StartingSerial,
			EndingSerial:   in.EndingSerial,
			PendingRanges:  pending,
		}, uc.validator)
	})
}

// RemoveDetail deshace un detalle (p. ej. el último rango añadido) de la línea.
func (uc *UseCase) RemoveDetail(ctx context.Context, companyID, id string, lineNumber int, stockID string, index int) (*dto.SessionResponse, error) {
	return uc.mutate(ctx, companyID, id, "remove-detail", func(sess *entity.ChangeSession) ([]entity.ChangeLine, error) {
		lines, err := engine.RemoveDetail(sess.Lines, lineNumber, stockID, index)
		if err != nil {
			return nil, err
		}
		return engine.PruneEmptyLines(lines), nil
	})
}

// Quantities cantidades de origen, restante y sugerida del stock para la operación lineNumber.
func (uc *UseCase) Quantities(ctx context.Context, companyID, id, stockID string, lineNumber int) (*dto.QuantitiesResponse, error) {
	sess, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	rec, err := uc.record(ctx, sess, stockID)
	if err != nil {
		return nil, err
	}
	return &dto.QuantitiesResponse{
		StockID:        rec.StockID,
		LineNumber:     lineNumber,
		PackingUnit:    rec.PackingUnit.Code,
		Origin:         engine.OriginQuantity(*rec, sess.Lines, lineNumber),
		Remaining:      engine.RemainingQuantity(*rec, sess.Lines, lineNumber),
		EntryLimit:     engine.EntryLimitQuantity(*rec, sess.Lines, lineNumber),
		QuantityToMove: engine.QuantityToMove(*rec, sess.Lines, lineNumber),
	}, nil
}

// Submit convierte la sesión en documento. Dentro de una transacción bloquea cada stock,
// comprueba que lo pedido sigue disponible y lo reserva; después descarta la sesión.
func (uc *UseCase) Submit(ctx context.Context, companyID, id string) (*dto.DocumentPayload, error) {
	sess, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	lines := engine.PruneEmptyLines(sess.Lines)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la sesión no tiene líneas", domain.ErrInvalidInput)
	}
	for _, l := range lines {
		if err := engine.ValidateDestination(sess.Kind, l.Destination); err != nil {
			return nil, fmt.Errorf("línea %d: %w", l.LineNumber, err)
		}
	}

	// Las filas se bloquean en orden de StockID.
	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, l := range lines {
		if _, ok := totals[l.StockID]; !ok {
			order = append(order, l.StockID)
		}
		totals[l.StockID] = totals[l.StockID].Add(l.QuantityInStockUnit)
	}
	sort.Strings(order)

	doc := &entity.ChangeDocument{
		ID:          uuid.New().String(),
		SessionID:   sess.ID,
		Kind:        sess.Kind,
		Site:        sess.Site,
		CompanyID:   sess.CompanyID,
		UserID:      sess.UserID,
		Lines:       lines,
		SubmittedAt: uc.now(),
	}
	err = uc.txRunner.Run(ctx, func(
		ctx context.Context,
		stockRepo repository.StockRecordRepository,
		docRepo repository.ChangeDocumentRepository,
	) error {
		for _, stockID := range order {
			rec, err := stockRepo.GetForUpdate(ctx, stockID)
			if err != nil {
				return fmt.Errorf("stock %s: %w", stockID, err)
			}
			available := engine.OriginStockQuantity(*rec, nil, 0)
			if totals[stockID].GreaterThan(available) {
				return fmt.Errorf("%w: stock %s, solicitado %s, disponible %s %s", domain.ErrQuantityExceedsRemaining,
					stockID, totals[stockID].String(), decimal.Max(available, decimal.Zero).String(), rec.StockUnit)
			}
			if err := stockRepo.AddAllocated(ctx, stockID, totals[stockID]); err != nil {
				return err
			}
		}
		return docRepo.Create(ctx, doc)
	})
	if err != nil {
		uc.log.Info().Err(err).Str("session_id", id).Msg("envío de documento rechazado")
		return nil, err
	}

	if err := uc.sessions.Delete(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("session_id", id).Msg("no se pudo descartar la sesión enviada")
	}
	uc.log.Info().Str("session_id", id).Str("document_id", doc.ID).Int("lines", len(lines)).Msg("documento de cambio enviado")
	return &dto.DocumentPayload{
		ID:          doc.ID,
		SessionID:   doc.SessionID,
		Kind:        doc.Kind,
		Site:        doc.Site,
		Lines:       doc.Lines,
		SubmittedAt: doc.SubmittedAt,
	}, nil
}

// PendingDocumentPDF genera el resumen imprimible de la sesión. Devuelve también el nombre del archivo.
func (uc *UseCase) PendingDocumentPDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	sess, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("%w: generador de PDF no configurado", domain.ErrInvalidInput)
	}
	out, err := uc.pdf.GeneratePendingDocumentPDF(ctx, sess)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	return out, fmt.Sprintf("cambio-%s-%s.pdf", sess.Site, sess.ID), nil
}

// load recupera la sesión; las de otra empresa se tratan como inexistentes.
func (uc *UseCase) load(ctx context.Context, companyID, id string) (*entity.ChangeSession, error) {
	sess, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.CompanyID != companyID {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// mutate aplica fn a las líneas y guarda la sesión solo si fn no falla.
func (uc *UseCase) mutate(
	ctx context.Context,
	companyID, id, op string,
	fn func(sess *entity.ChangeSession) ([]entity.ChangeLine, error),
) (*dto.SessionResponse, error) {
	sess, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	lines, err := fn(sess)
	if err != nil {
		if isValidation(err) {
			uc.log.Info().Err(err).Str("session_id", id).Str("op", op).Msg("cambio rechazado")
		}
		return nil, err
	}
	sess.Lines = lines
	sess.UpdatedAt = uc.now()
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	uc.log.Debug().Str("session_id", id).Str("op", op).Int("lines", len(lines)).Msg("sesión actualizada")
	return toSessionResponse(sess), nil
}

// record carga el registro de stock y comprueba que es de la planta de la sesión.
func (uc *UseCase) record(ctx context.Context, sess *entity.ChangeSession, stockID string) (*entity.StockRecord, error) {
	rec, err := uc.stocks.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if rec.Site != sess.Site {
		return nil, fmt.Errorf("%w: el stock %s no pertenece a la planta %s", domain.ErrInvalidInput, stockID, sess.Site)
	}
	return rec, nil
}

func (uc *UseCase) selection(ctx context.Context, sess *entity.ChangeSession, in dto.SelectionRequest) (engine.Selection, error) {
	rec, err := uc.record(ctx, sess, in.StockID)
	if err != nil {
		return engine.Selection{}, err
	}
	sel := engine.Selection{
		OperationKey:     in.LineNumber,
		Kind:             sess.Kind,
		Record:           *rec,
		Quantity:         in.Quantity,
		ConversionFactor: in.ConversionFactor,
		Destination:      in.Destination.ToEntity(),
	}
	if in.PackingUnit != nil {
		sel.PackingUnit = &entity.PackingUnit{Code: in.PackingUnit.Code, NumberOfDecimals: in.PackingUnit.NumberOfDecimals}
	}
	return sel, nil
}

func isValidation(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput, domain.ErrInvalidQuantity, domain.ErrQuantityExceedsRemaining,
		domain.ErrDestinationRequired, domain.ErrLineNotFound, domain.ErrSerialStartRequired,
		domain.ErrSerialRangeOverlap, domain.ErrSerialRangeSizeMismatch, domain.ErrSerialNotSequential,
		domain.ErrSerialRangeNotAllowed, domain.ErrSerialWithoutNumericSuffix, domain.ErrInvalidSerialCount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toSessionResponse(s *entity.ChangeSession) *dto.SessionResponse {
	lines := s.Lines
	if lines == nil {
		lines = []entity.ChangeLine{}
	}
	return &dto.SessionResponse{
		ID:        s.ID,
		Kind:      s.Kind,
		Site:      s.Site,
		Lines:     lines,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
