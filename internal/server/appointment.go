package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apptdomain "github.com/vendahub/salesops/internal/appointment/domain"
)

// ScheduleAppointment books a meeting slot. Rule violations surface as a
// 409 carrying the first violated rule.
func (s *Server) ScheduleAppointment(c *gin.Context) {
	var req apptdomain.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	appointment, err := s.appointmentSvc.Schedule(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (s *Server) FinalizeAppointment(c *gin.Context) {
	var req apptdomain.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	appointment, err := s.appointmentSvc.Finalize(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}
