package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthanchor/internal/anchor"
	"healthanchor/internal/anchor/service"
	"healthanchor/internal/platform/middleware"
	"healthanchor/internal/transport/http/shared"
	dErrors "healthanchor/pkg/domainerrors"
)

// Service defines the anchoring operations the handler depends on.
type Service interface {
	AnchorRecord(ctx context.Context, req service.AnchorRequest) (anchor.Receipt, error)
	GetRecord(ctx context.Context, transactionID string) (anchor.Record, error)
	VerifyRecord(ctx context.Context, transactionID, payload string) (anchor.Record, bool, error)
}

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Handler exposes the anchoring workflow over HTTP. It stays thin: decode,
// delegate, translate errors.
type Handler struct {
	logger  *slog.Logger
	anchors Service
}

// New creates a new anchor Handler.
func New(anchors Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, anchors: anchors}
}

// Register registers the record routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/records/anchor", h.handleAnchor)
	r.Post("/records/get", h.handleGet)
	r.Get("/records/{transactionID}", h.handleGetByPath)
}

type anchorRequest struct {
	PatientID string `json:"patientId"`
	Payload   string `json:"payload"`
	IssuerID  string `json:"issuerId,omitempty"`
}

type receiptResponse struct {
	TransactionID     string `json:"transactionId"`
	RecordFingerprint string `json:"recordFingerprint"`
	IssuedAt          int64  `json:"issuedAt"`
	WalletAddress     string `json:"walletAddress"`
}

type getRequest struct {
	TransactionID string `json:"transactionId"`
	// Payload optionally triggers fingerprint verification against the
	// anchored digest.
	Payload string `json:"payload,omitempty"`
}

type recordResponse struct {
	TransactionID     string `json:"transactionId"`
	PatientID         string `json:"patientId"`
	RecordFingerprint string `json:"recordFingerprint"`
	IssuerID          string `json:"issuerId"`
	IssuedAt          int64  `json:"issuedAt"`
	WalletAddress     string `json:"walletAddress"`
	Verified          *bool  `json:"verified,omitempty"`
}

func (h *Handler) handleAnchor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req anchorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	receipt, err := h.anchors.AnchorRecord(ctx, service.AnchorRequest{
		PatientID: req.PatientID,
		Payload:   req.Payload,
		IssuerID:  req.IssuerID,
	})
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeInvalidArgument) {
			h.logger.ErrorContext(ctx, "anchor failed",
				"error", err.Error(),
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, receiptResponse{
		TransactionID:     receipt.TransactionID,
		RecordFingerprint: receipt.RecordFingerprint,
		IssuedAt:          receipt.IssuedAt,
		WalletAddress:     receipt.WalletAddress,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req getRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	if req.Payload != "" {
		record, verified, err := h.anchors.VerifyRecord(ctx, req.TransactionID, req.Payload)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, toRecordResponse(record, &verified))
		return
	}

	record, err := h.anchors.GetRecord(ctx, req.TransactionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRecordResponse(record, nil))
}

func (h *Handler) handleGetByPath(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	record, err := h.anchors.GetRecord(r.Context(), transactionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toRecordResponse(record, nil))
}

func toRecordResponse(record anchor.Record, verified *bool) recordResponse {
	return recordResponse{
		TransactionID:     record.TransactionID,
		PatientID:         record.PatientID,
		RecordFingerprint: record.RecordFingerprint,
		IssuerID:          record.IssuerID,
		IssuedAt:          record.IssuedAt,
		WalletAddress:     record.WalletAddress,
		Verified:          verified,
	}
}
