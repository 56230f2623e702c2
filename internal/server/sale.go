package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSaleByID returns the assembled sale with its resolved relations.
func (s *Server) GetSaleByID(c *gin.Context) {
	view, err := s.saleSvc.Assemble(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) ApproveSale(c *gin.Context) {
	sale, err := s.saleSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
