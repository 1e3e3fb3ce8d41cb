package v1

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/pkg/detector"
)

const (
	scanDir = "scans"
	cropDir = "tmp_crops"
)

type PinDetector interface {
	Detect(ctx context.Context, imagePath string) (detector.Result, error)
}

type ScanHandler struct {
	conf      *config.UploadsConfig
	detector  PinDetector
	publicURL string
}

func NewScanHandler(conf *config.UploadsConfig, d PinDetector, publicURL string) *ScanHandler {
	return &ScanHandler{
		conf:      conf,
		detector:  d,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// HandleScanPin godoc
// @Summary      Recognise batteries in a photo
// @Tags         scan
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "photo of the batteries"
// @Success      200    {object}  detector.Result
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /scan/pin [post]
func (h *ScanHandler) HandleScanPin(ctx *gin.Context) {
	name, rErr := storeImage(ctx, h.conf, "image", scanDir)
	if rErr != nil {
		response.RenderErr(ctx, rErr)
		return
	}

	result, err := h.detector.Detect(ctx.Request.Context(), filepath.Join(h.conf.Dir, filepath.FromSlash(name)))
	if err != nil {
		err = fmt.Errorf("v1.HandleScanPin -> h.detector.Detect -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	result.Crops = make([]string, len(result.Detections))
	for i := range result.Detections {
		d := &result.Detections[i]
		if d.Crop == "" {
			continue
		}

		url, err := h.publishCrop(d.Crop)
		d.Crop = ""
		if err != nil {
			zap.L().Warn("failed to publish pin crop", zap.String("scan", name), zap.Error(err))
			continue
		}
		d.CropURL = &url
		result.Crops[i] = url
	}

	ctx.JSON(http.StatusOK, result)
}

// publishCrop copies a crop written by the detector into the public uploads dir.
func (h *ScanHandler) publishCrop(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("os.Open -> %w", err)
	}
	defer in.Close()

	dir := filepath.Join(h.conf.Dir, cropDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	base := filepath.Base(src)
	out, err := os.Create(filepath.Join(dir, base))
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("io.Copy -> %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("out.Close -> %w", err)
	}

	return h.publicURL + "/uploads/" + cropDir + "/" + base, nil
}
