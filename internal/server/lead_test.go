package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/vendahub/salesops/internal/clock"
	"github.com/vendahub/salesops/internal/config"
	leaddomain "github.com/vendahub/salesops/internal/lead/domain"
	"github.com/vendahub/salesops/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testMetrics = metrics.New()

type fakeLeadService struct {
	lastPayload map[string]any
	ingestErr   error
}

func (f *fakeLeadService) Ingest(ctx context.Context, payload map[string]any) (leaddomain.Lead, error) {
	f.lastPayload = payload
	if f.ingestErr != nil {
		return leaddomain.Lead{}, f.ingestErr
	}
	return leaddomain.Lead{
		ID:        snowflake.ID(123),
		Name:      "Maria Silva",
		Email:     "maria@exemplo.com.br",
		Phone:     "+5511987654321",
		UTMSource: "instagram",
	}, nil
}

func (f *fakeLeadService) GetByID(ctx context.Context, id string) (leaddomain.Lead, error) {
	return leaddomain.Lead{}, leaddomain.ErrNotFound
}

func (f *fakeLeadService) List(ctx context.Context, req leaddomain.ListLeadRequest) (leaddomain.ListLeadResponse, error) {
	return leaddomain.ListLeadResponse{}, nil
}

func newTestServer(t *testing.T, leadSvc leaddomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		HTTPAddr:             ":0",
		WebhookAllowedOrigin: "https://paginas.vendahub.com.br",
	}
	engine := NewEngine(cfg, zap.NewNop(), testMetrics)
	return NewServer(ServerParams{
		Gin:     engine,
		Cfg:     cfg,
		Clock:   clock.NewFakeClock(time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)),
		LeadSvc: leadSvc,
	})
}

func TestIngestLead_JSONBody(t *testing.T) {
	fake := &fakeLeadService{}
	srv := newTestServer(t, fake)

	body, _ := json.Marshal(map[string]any{"nome": "João", "email": "joao@exemplo.com.br"})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "João", fake.lastPayload["nome"])
	assert.Equal(t, "https://paginas.vendahub.com.br", w.Header().Get("Access-Control-Allow-Origin"))

	var resp struct {
		Status string `json:"status"`
		LeadID string `json:"lead_id"`
		Fields struct {
			Name      string `json:"name"`
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			UTMSource string `json:"utm_source"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "123", resp.LeadID)

	// The envelope echoes what the extractor parsed, not the raw payload.
	assert.Equal(t, "Maria Silva", resp.Fields.Name)
	assert.Equal(t, "maria@exemplo.com.br", resp.Fields.Email)
	assert.Equal(t, "+5511987654321", resp.Fields.Phone)
	assert.Equal(t, "instagram", resp.Fields.UTMSource)
}

func TestIngestLead_FormBody(t *testing.T) {
	fake := &fakeLeadService{}
	srv := newTestServer(t, fake)

	form := url.Values{}
	form.Set("name", "Maria")
	form.Set("utm_source", "instagram")
	req := httptest.NewRequest(http.MethodPost, "/webhooks/leads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Maria", fake.lastPayload["name"])
	assert.Equal(t, "instagram", fake.lastPayload["utm_source"])
}

func TestIngestLead_EmptyBody(t *testing.T) {
	fake := &fakeLeadService{}
	srv := newTestServer(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/leads", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, fake.lastPayload)
}

func TestIngestLead_Preflight(t *testing.T) {
	srv := newTestServer(t, &fakeLeadService{})

	req := httptest.NewRequest(http.MethodOptions, "/webhooks/leads", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://paginas.vendahub.com.br", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestIngestLead_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeLeadService{})

	req := httptest.NewRequest(http.MethodGet, "/webhooks/leads", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestListWeeks_DefaultsToCurrentMonth(t *testing.T) {
	srv := newTestServer(t, &fakeLeadService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weeks", nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Weeks []struct {
			Index int `json:"index"`
		} `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Saturday 2026-08-29 belongs to the week ending Tuesday Sep 1, so the
	// current business month is September.
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 9, resp.Month)
	require.Len(t, resp.Weeks, 5)
	assert.Equal(t, 1, resp.Weeks[0].Index)
}
