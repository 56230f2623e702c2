package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	leaddomain "github.com/vendahub/salesops/internal/lead/domain"
	"github.com/vendahub/salesops/pkg/db/pagination"
)

// IngestLead receives lead-capture submissions from landing pages. Both JSON
// and form-urlencoded bodies are accepted since capture tools send either.
func (s *Server) IngestLead(c *gin.Context) {
	s.setWebhookCORS(c)

	payload, err := parseLeadPayload(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	lead, err := s.leadSvc.Ingest(c.Request.Context(), payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	// Capture forms display the parsed fields back to the visitor, so the
	// envelope echoes what the extractor understood.
	c.JSON(http.StatusCreated, gin.H{
		"status":  "ok",
		"lead_id": lead.ID.String(),
		"fields": gin.H{
			"name":         lead.Name,
			"email":        lead.Email,
			"phone":        lead.Phone,
			"utm_source":   lead.UTMSource,
			"utm_medium":   lead.UTMMedium,
			"utm_campaign": lead.UTMCampaign,
			"tracking_id":  lead.TrackingID,
		},
	})
}

// LeadPreflight answers CORS preflight requests from the capture forms.
func (s *Server) LeadPreflight(c *gin.Context) {
	s.setWebhookCORS(c)
	c.Status(http.StatusOK)
}

func (s *Server) setWebhookCORS(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", s.cfg.WebhookAllowedOrigin)
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type")
}

func parseLeadPayload(c *gin.Context) (map[string]any, error) {
	contentType := c.ContentType()

	if strings.Contains(contentType, "json") || contentType == "" {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			return nil, leaddomain.ErrEmptyPayload
		}
		return payload, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, ErrInvalidRequest
	}
	payload := make(map[string]any, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		payload[key] = values[0]
	}
	return payload, nil
}

func (s *Server) GetLeadByID(c *gin.Context) {
	lead, err := s.leadSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (s *Server) ListLeads(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.leadSvc.List(c.Request.Context(), leaddomain.ListLeadRequest{Pagination: page})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
