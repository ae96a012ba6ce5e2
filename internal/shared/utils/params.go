package utils

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseUUIDParam đọc path param dạng UUID.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// ReadFormFile reads a multipart file field, at most limit+1 bytes so callers
// can detect oversized uploads without buffering them whole.
func ReadFormFile(c *gin.Context, field string, limit int64) (*multipart.FileHeader, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("missing form file %q: %w", field, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	return header, data, nil
}
