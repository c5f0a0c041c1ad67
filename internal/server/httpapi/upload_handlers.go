package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /api/uploads?kind=listing|avatar
//
// Hands the client a presigned PUT URL so image bytes never pass through
// this server. The returned key is what gets stored on the listing or
// profile afterwards.
func (s *Server) createUpload(c *gin.Context) {
	userID := currentUserID(c)

	var key, url string
	var err error
	switch c.DefaultQuery("kind", "listing") {
	case "avatar":
		key, url, err = s.storage.PresignAvatarUpload(c.Request.Context(), userID)
	case "listing":
		key, url, err = s.storage.PresignListingUpload(c.Request.Context(), userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown upload kind"})
		return
	}
	if err != nil {
		s.fail(c, err, "error creating upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": url})
}
