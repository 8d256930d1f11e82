package api

import (
	"net/http"
	"path"
	"strings"

	"pioo/tugas-api/web"

	"github.com/gin-gonic/gin"
)

// ServeSPA handles every route the API doesn't. Real bundle files are
// served as-is, anything else gets the entry document so client-side
// routing can take over. API-looking paths still 404 as JSON.
func (a *API) ServeSPA(c *gin.Context) {
	reqPath := c.Request.URL.Path

	if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
		return
	}

	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
		return
	}

	name := strings.TrimPrefix(path.Clean(reqPath), "/")
	if name != "" && name != "index.html" && web.Exists(name) {
		c.FileFromFS(name, web.FileSystem())
		return
	}

	// http.ServeFile redirects index.html requests, so serve the bytes
	// directly for the fallback
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML())
}
