// Package service implements the anchoring workflow: fingerprint the payload,
// assign a transaction id, commit the anchor record, hand back a receipt.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"healthanchor/internal/anchor"
	"healthanchor/internal/anchor/metrics"
	"healthanchor/internal/audit"
	"healthanchor/internal/fingerprint"
	"healthanchor/pkg/domainerrors"
	"healthanchor/pkg/platform/sentinel"
	"healthanchor/pkg/requestcontext"
)

// AnchorRequest is the boundary shape for an anchor operation. IssuerID is
// optional; an authenticated issuer from the request context takes precedence
// and the configured placeholder covers the fully anonymous case.
type AnchorRequest struct {
	PatientID string
	Payload   string
	IssuerID  string
}

// Service composes the fingerprint engine and the anchor store. All state
// lives behind the injected store; the service itself is stateless and safe
// for concurrent use.
type Service struct {
	store             anchor.Store
	auditor           *audit.Publisher
	metrics           *metrics.Metrics
	logger            *slog.Logger
	issuerPlaceholder string
	walletPlaceholder string
}

func NewService(
	store anchor.Store,
	auditor *audit.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	issuerPlaceholder, walletPlaceholder string,
) *Service {
	return &Service{
		store:             store,
		auditor:           auditor,
		metrics:           m,
		logger:            logger,
		issuerPlaceholder: issuerPlaceholder,
		walletPlaceholder: walletPlaceholder,
	}
}

// AnchorRecord commits a fingerprint of the payload and returns the receipt.
// The store enforces put-once semantics; a generated transaction id that
// collides is regenerated exactly once before giving up.
func (s *Service) AnchorRecord(ctx context.Context, req AnchorRequest) (anchor.Receipt, error) {
	start := time.Now()

	if req.PatientID == "" {
		return anchor.Receipt{}, domainerrors.New(domainerrors.CodeInvalidArgument, "patientId is required")
	}
	if req.Payload == "" {
		return anchor.Receipt{}, domainerrors.New(domainerrors.CodeInvalidArgument, "payload is required")
	}

	digest := fingerprint.Compute([]byte(req.Payload))
	issuerID := s.resolveIssuer(ctx, req.IssuerID)
	issuedAt := requestcontext.Now(ctx).UnixMilli()

	record := anchor.Record{
		PatientID:         req.PatientID,
		RecordFingerprint: digest,
		IssuerID:          issuerID,
		IssuedAt:          issuedAt,
		WalletAddress:     s.walletPlaceholder,
	}

	txID, err := s.commit(ctx, record)
	if err != nil {
		return anchor.Receipt{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordsAnchored.Inc()
		s.metrics.ObserveAnchor(start)
	}
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Kind:          audit.KindRecordAnchored,
			ActorID:       issuerID,
			PatientID:     req.PatientID,
			TransactionID: txID,
			RequestID:     requestcontext.RequestID(ctx),
		})
	}
	s.logger.InfoContext(ctx, "record anchored",
		"transaction_id", txID,
		"issuer_id", issuerID,
		"request_id", requestcontext.RequestID(ctx),
	)

	return anchor.Receipt{
		TransactionID:     txID,
		RecordFingerprint: digest,
		IssuedAt:          issuedAt,
		WalletAddress:     s.walletPlaceholder,
	}, nil
}

// commit writes the record under a fresh transaction id, retrying generation
// once on collision before failing Internal.
func (s *Service) commit(ctx context.Context, record anchor.Record) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		record.TransactionID = s.store.GenerateTransactionID()
		err := s.store.Put(ctx, record)
		if err == nil {
			return record.TransactionID, nil
		}
		if errors.Is(err, sentinel.ErrConflict) {
			if s.metrics != nil {
				s.metrics.AnchorConflicts.Inc()
			}
			s.logger.WarnContext(ctx, "transaction id collision, regenerating",
				"transaction_id", record.TransactionID,
				"attempt", attempt,
			)
			continue
		}
		return "", domainerrors.Wrap(domainerrors.CodeInternal, "anchor store write failed", err)
	}
	return "", domainerrors.New(domainerrors.CodeInternal, "transaction id generation exhausted retries")
}

// GetRecord looks up a committed anchor record by transaction id.
func (s *Service) GetRecord(ctx context.Context, transactionID string) (anchor.Record, error) {
	if transactionID == "" {
		return anchor.Record{}, domainerrors.New(domainerrors.CodeInvalidArgument, "transactionId is required")
	}
	record, err := s.store.Get(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			if s.metrics != nil {
				s.metrics.IncrementLookup("miss")
			}
			return anchor.Record{}, domainerrors.Wrap(domainerrors.CodeNotFound, "no anchor for transaction id", err)
		}
		return anchor.Record{}, domainerrors.Wrap(domainerrors.CodeInternal, "anchor store read failed", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementLookup("hit")
	}
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Kind:          audit.KindRecordViewed,
			ActorID:       requestcontext.IssuerID(ctx),
			PatientID:     record.PatientID,
			TransactionID: transactionID,
			RequestID:     requestcontext.RequestID(ctx),
		})
	}
	return record, nil
}

// VerifyRecord recomputes the fingerprint of payload and compares it with the
// anchored one. The bool result distinguishes a mismatch from a lookup error.
func (s *Service) VerifyRecord(ctx context.Context, transactionID, payload string) (anchor.Record, bool, error) {
	record, err := s.GetRecord(ctx, transactionID)
	if err != nil {
		return anchor.Record{}, false, err
	}
	verified := fingerprint.Matches([]byte(payload), record.RecordFingerprint)
	if !verified && s.metrics != nil {
		s.metrics.VerifyMismatches.Inc()
	}
	return record, verified, nil
}

func (s *Service) resolveIssuer(ctx context.Context, requested string) string {
	if authenticated := requestcontext.IssuerID(ctx); authenticated != "" {
		return authenticated
	}
	if requested != "" {
		return requested
	}
	return s.issuerPlaceholder
}
