package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/vendahub/salesops/internal/commission/domain"
)

// GetMemberAttainment returns one member's weekly attainment. The capped
// query flag clamps the returned percentage at 100 for progress-bar UIs;
// commission math always uses the uncapped value.
func (s *Server) GetMemberAttainment(c *gin.Context) {
	year, month, week, ok := s.periodParams(c)
	if !ok {
		return
	}

	attainment, err := s.commissionSvc.MemberAttainment(c.Request.Context(), commissiondomain.MemberAttainmentRequest{
		MemberID: c.Param("id"),
		Year:     year,
		Month:    month,
		Week:     week,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	attainment.Percent = attainment.DisplayPercent(queryBool(c, "capped"))
	c.JSON(http.StatusOK, attainment)
}

func (s *Server) GetSupervisorCommission(c *gin.Context) {
	year, month, week, ok := s.periodParams(c)
	if !ok {
		return
	}

	result, err := s.commissionSvc.SupervisorCommission(c.Request.Context(), commissiondomain.SupervisorCommissionRequest{
		SupervisorID: c.Param("id"),
		Year:         year,
		Month:        month,
		Week:         week,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) GetMonthlyCommission(c *gin.Context) {
	year, month, ok := s.monthParams(c)
	if !ok {
		return
	}

	results, err := s.commissionSvc.MonthlyCommission(c.Request.Context(), commissiondomain.MonthlyCommissionRequest{
		SupervisorID: c.Param("id"),
		Year:         year,
		Month:        month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var totalCents int64
	for _, result := range results {
		totalCents += result.AmountCents
	}
	c.JSON(http.StatusOK, gin.H{
		"year":        year,
		"month":       int(month),
		"weeks":       results,
		"total_cents": totalCents,
	})
}
