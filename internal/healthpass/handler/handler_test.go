package handler

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"healthanchor/internal/healthpass"
	"healthanchor/pkg/testutil"
)

type HealthpassHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestHealthpassHandlerSuite(t *testing.T) {
	suite.Run(t, new(HealthpassHandlerSuite))
}

func (s *HealthpassHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(logger).Register(s.router)
}

func (s *HealthpassHandlerSuite) TestEncode() {
	s.Run("returns a decodable token", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/healthpass/encode", map[string]any{
			"transactionId":     "tx_1700000000000_a1b2c3d4e5f6",
			"patientId":         "P1",
			"recordFingerprint": "ff",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string]string](s.T(), rr)

		envelope, err := healthpass.Decode((*resp)["token"])
		s.Require().NoError(err)
		s.Equal("P1", envelope.PatientID)
		s.Equal("tx_1700000000000_a1b2c3d4e5f6", envelope.TransactionID)
		s.Empty((*resp)["qrPng"])
	})

	s.Run("renders a qr image on request", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/healthpass/encode", map[string]any{
			"patientId": "P1",
			"type":      "patient_access",
			"renderQr":  true,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string]string](s.T(), rr)
		png, err := base64.StdEncoding.DecodeString((*resp)["qrPng"])
		s.Require().NoError(err)
		s.NotEmpty(png)
	})

	s.Run("missing patientId maps to 400", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/healthpass/encode", map[string]any{
			"transactionId": "tx_1",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})
}

func (s *HealthpassHandlerSuite) TestDecode() {
	s.Run("round-trips an encoded envelope", func() {
		token, err := healthpass.Encode(healthpass.NewPatientAccessEnvelope("P2"))
		s.Require().NoError(err)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/healthpass/decode", map[string]string{
			"token": token,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "patientId", "P2")
		testutil.AssertJSONContains(s.T(), rr, "type", "patient_access")
	})

	s.Run("malformed token maps to 422", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/healthpass/decode", map[string]string{
			"token": "not a token",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "invalid_format")
	})
}
