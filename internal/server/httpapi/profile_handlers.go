package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Avatar   string `json:"avatar"`
}

// GET /api/profile
//
// Returns the caller's profile, creating one from account data if the
// signup flow never stored it.
func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.profiles.GetOrCreate(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err, "error loading profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/profile
func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	profile, err := s.profiles.Update(c.Request.Context(), currentUserID(c), req.Name, req.Location, req.Avatar)
	if err != nil {
		s.fail(c, err, "error updating profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}
