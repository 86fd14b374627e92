package handlers

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// dataURLBytes decodes a storefront image payload. Accepts both full data
// URLs ("data:image/png;base64,...") and bare base64.
func dataURLBytes(src string) ([]byte, error) {
	payload := src
	if idx := strings.Index(src, ","); idx >= 0 {
		payload = src[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
