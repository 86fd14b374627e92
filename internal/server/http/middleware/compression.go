package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip encoded request bodies before handlers
// bind them. Upload payloads carry base64 data URLs and compress well,
// so the storefront sends them gzipped.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		body := c.Request.Body
		gz, err := gzip.NewReader(body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer gz.Close()
		defer body.Close()

		c.Request.Body = io.NopCloser(gz)
		c.Request.Header.Del("Content-Encoding")
		// Length of the decompressed stream is unknown.
		c.Request.ContentLength = -1
		c.Next()
	}
}
