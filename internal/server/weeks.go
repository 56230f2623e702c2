package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendahub/salesops/internal/period"
)

// ListWeeks returns every business week of the requested month.
func (s *Server) ListWeeks(c *gin.Context) {
	year, month, ok := s.monthParams(c)
	if !ok {
		return
	}

	weeks := period.WeeksIn(year, month, s.clock.Now().Location())
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": int(month),
		"weeks": weeks,
	})
}

// GetCurrentWeek returns the business week containing now.
func (s *Server) GetCurrentWeek(c *gin.Context) {
	now := s.clock.Now()
	year, month, index := period.Current(now)
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": int(month),
		"week":  period.WeekOf(year, month, index, now.Location()),
	})
}
