package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/vietcraft/storefront/internal/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *Server) getStoreData(c *gin.Context) {
	snap, err := s.store.Read(c.Request.Context())
	if err != nil {
		s.log.Error(c.Request.Context(), "snapshot read failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to read store data"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// postStoreData replaces the canonical snapshot. The body must be a JSON
// object; arrays, strings and null are rejected before any decode attempt
// so a malformed client cannot wipe the document.
func (s *Server) postStoreData(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read request body"})
		return
	}
	if !isJSONObject(body) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "request body must be a JSON object"})
		return
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid store data payload"})
		return
	}

	catalog.NormalizeSnapshot(&snap)

	if err := s.store.Write(c.Request.Context(), snap); err != nil {
		s.log.Error(c.Request.Context(), "snapshot write failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist store data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// isJSONObject reports whether data's first JSON token opens an object.
func isJSONObject(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
