package v1

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/config"
)

var allowedUploadExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var (
	errMissingFile     = errors.New("missing file")
	errFileTooLarge    = errors.New("file is too large")
	errUnsupportedFile = errors.New("only jpg, png, gif and webp images are accepted")
)

type UploadHandler struct {
	conf      *config.UploadsConfig
	publicURL string
}

func NewUploadHandler(conf *config.UploadsConfig, publicURL string) *UploadHandler {
	return &UploadHandler{
		conf:      conf,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// HandleUpload godoc
// @Summary      Upload an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "image file"
// @Success      201   {object}  response.UploadResponse
// @Failure      400   {object}  response.Err
// @Router       /uploads [post]
func (h *UploadHandler) HandleUpload(ctx *gin.Context) {
	name, rErr := storeImage(ctx, h.conf, "file", "")
	if rErr != nil {
		response.RenderErr(ctx, rErr)
		return
	}

	ctx.JSON(http.StatusCreated, response.UploadResponse{URL: h.publicURL + "/uploads/" + name})
}

// storeImage saves the multipart image in field under conf.Dir/subdir and returns
// its slash-separated name relative to conf.Dir.
func storeImage(ctx *gin.Context, conf *config.UploadsConfig, field, subdir string) (string, *response.Err) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, conf.MaxFileSize+1<<20)

	file, err := ctx.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", response.ErrBadRequest(errFileTooLarge)
		}

		return "", response.ErrBadRequest(errMissingFile)
	}
	if file.Size > conf.MaxFileSize {
		return "", response.ErrBadRequest(errFileTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return "", response.ErrBadRequest(errUnsupportedFile)
	}

	dir := filepath.Join(conf.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", response.ErrInternalServerError(fmt.Errorf("v1.storeImage -> os.MkdirAll -> %w", err))
	}

	name := uuid.NewString() + ext
	if err := ctx.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", response.ErrInternalServerError(fmt.Errorf("v1.storeImage -> ctx.SaveUploadedFile -> %w", err))
	}

	return path.Join(filepath.ToSlash(subdir), name), nil
}
