package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
)

func (s *Server) CreateMember(c *gin.Context) {
	var req memberdomain.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	member, err := s.memberSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (s *Server) GetMemberByID(c *gin.Context) {
	member, err := s.memberSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (s *Server) ListMembers(c *gin.Context) {
	req := memberdomain.ListMemberRequest{
		Role:       memberdomain.Role(c.Query("role")),
		ActiveOnly: queryBool(c, "active"),
	}

	members, err := s.memberSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) DeactivateMember(c *gin.Context) {
	if err := s.memberSvc.SetActive(c.Request.Context(), c.Param("id"), false); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
