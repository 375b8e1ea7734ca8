package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/excursion-booking/internal/config"
)

// UploadHandler stores excursion and profile photos on local disk and
// returns the URL they are served from.  Filenames are random UUIDs so
// uploads can never collide or overwrite each other.
type UploadHandler struct {
	Cfg config.Config
}

func NewUploadHandler(cfg config.Config) *UploadHandler {
	return &UploadHandler{Cfg: cfg}
}

var allowedPhotoExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Photo handles POST /api/uploads/excursion-photo (multipart form, field
// "photo").  The file lands under the configured upload directory and
// the response carries the public URL to put into photos fields.
func (h *UploadHandler) Photo(c echo.Context) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "photo file is required"})
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedPhotoExt[ext] {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unsupported file type"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read upload"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store upload"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"url": h.Cfg.StaticPrefix + "/" + name,
	})
}
