// Package handler exposes the health-pass codec over HTTP for clients that
// cannot link the library directly.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthanchor/internal/healthpass"
	"healthanchor/internal/transport/http/shared"
	dErrors "healthanchor/pkg/domainerrors"
)

// Handler serves encode/decode requests. The codec is pure, so there is no
// service layer behind it.
type Handler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Register registers the health-pass routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/healthpass/encode", h.handleEncode)
	r.Post("/healthpass/decode", h.handleDecode)
}

type encodeRequest struct {
	TransactionID     string `json:"transactionId"`
	PatientID         string `json:"patientId"`
	RecordFingerprint string `json:"recordFingerprint"`
	Type              string `json:"type"`
	RenderQR          bool   `json:"renderQr"`
}

type encodeResponse struct {
	Token string `json:"token"`
	QRPng string `json:"qrPng,omitempty"` // base64-encoded PNG
}

type decodeRequest struct {
	Token string `json:"token"`
}

func (h *Handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	token, err := healthpass.Encode(healthpass.Envelope{
		TransactionID:     req.TransactionID,
		PatientID:         req.PatientID,
		RecordFingerprint: req.RecordFingerprint,
		Type:              req.Type,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	resp := encodeResponse{Token: token}
	if req.RenderQR {
		png, err := healthpass.RenderPNG(token)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "qr rendering failed", "error", err.Error())
			shared.WriteError(w, err)
			return
		}
		resp.QRPng = base64.StdEncoding.EncodeToString(png)
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidArgument, "invalid request body"))
		return
	}

	envelope, err := healthpass.Decode(req.Token)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, envelope)
}
