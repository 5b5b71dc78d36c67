package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Hello echoes the query parameters back with a greeting.
func (s *Server) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hello, world!",
		"data":    c.Request.URL.Query(),
	})
}
