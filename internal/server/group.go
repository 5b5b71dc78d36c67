package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	groupdomain "github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type contactIDsRequest struct {
	ContactIDs []string `json:"contact_ids"`
}

func (s *Server) CreateGroup(c *gin.Context) {
	var req groupdomain.GroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.groupSvc.CreateGroup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListGroups(c *gin.Context) {
	var query struct {
		pagination.Pagination
		OwnerID string `form:"owner_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.groupSvc.ListGroups(c.Request.Context(), groupdomain.ListGroupRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		OwnerID:   strings.TrimSpace(query.OwnerID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetGroup(c *gin.Context) {
	resp, err := s.groupSvc.GetGroup(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateGroup(c *gin.Context) {
	var req groupdomain.GroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.groupSvc.UpdateGroup(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteGroup(c *gin.Context) {
	if err := s.groupSvc.DeleteGroup(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) AttachGroupAddress(c *gin.Context) {
	resp, err := s.groupSvc.AttachAddress(c.Request.Context(), param(c, "id"), param(c, "address_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DetachGroupAddress(c *gin.Context) {
	if err := s.groupSvc.DetachAddress(c.Request.Context(), param(c, "id"), param(c, "address_id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) CreateStore(c *gin.Context) {
	var req groupdomain.StoreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.groupSvc.CreateStore(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListStores(c *gin.Context) {
	resp, err := s.groupSvc.ListStores(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStore(c *gin.Context) {
	resp, err := s.groupSvc.GetStore(c.Request.Context(), param(c, "id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateStore(c *gin.Context) {
	var req groupdomain.StoreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.groupSvc.UpdateStore(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStore(c *gin.Context) {
	if err := s.groupSvc.DeleteStore(c.Request.Context(), param(c, "id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ReplaceStoreContacts(c *gin.Context) {
	var req contactIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.groupSvc.ReplaceStoreContacts(c.Request.Context(), param(c, "id"), req.ContactIDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isGroupValidationError(err error) bool {
	switch err {
	case groupdomain.ErrInvalidID,
		groupdomain.ErrInvalidEmail,
		groupdomain.ErrInvalidName,
		groupdomain.ErrInvalidOwner,
		groupdomain.ErrInvalidAddress,
		groupdomain.ErrInvalidContacts,
		groupdomain.ErrInvalidField:
		return true
	default:
		return false
	}
}
