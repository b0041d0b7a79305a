package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maxwharris/Produck/internal/apperror"
	"github.com/maxwharris/Produck/internal/service"
)

const uploadFormField = "files"

// Upload stores every file sent under the "files" form field. The whole body
// is capped at limitBytes.
func Upload(uploads *service.UploadService, limitBytes int64, log *zap.SugaredLogger) gin.HandlerFunc {
	const route = "POST /api/upload"
	return func(c *gin.Context) {
		defer handlePanic(c, log, route)

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limitBytes)
		form, err := c.MultipartForm()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, log, route, apperror.NewValidation(fmt.Sprintf("upload exceeds %d MB", limitBytes>>20)))
				return
			}
			respondError(c, log, route, apperror.NewValidation("multipart form with files is required"))
			return
		}

		urls, err := uploads.Save(form.File[uploadFormField])
		if err != nil {
			respondError(c, log, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"urls": urls})
	}
}
