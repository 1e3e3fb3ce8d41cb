// Package detector runs the external pin recognition model on an image.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pinswap/api/internal/config"
)

var (
	ErrNotConfigured = errors.New("pin detector is not installed")
	ErrFailed        = errors.New("pin detector failed")
	ErrTimeout       = errors.New("pin detector timed out")
	ErrInvalidOutput = errors.New("pin detector returned invalid output")
)

// Detection is one recognised battery. Crop is an absolute path once Detect returns.
type Detection struct {
	Box        []int   `json:"box"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Class      int     `json:"class"`
	Label      string  `json:"label"`
	Crop       string  `json:"crop,omitempty"`
	CropURL    *string `json:"crop_url,omitempty"`
	OCR        string  `json:"ocr"`
}

type Result struct {
	Detections  []Detection `json:"detections"`
	TotalPoints int         `json:"total_points"`
	Crops       []string    `json:"crops,omitempty"`
}

type Detector struct {
	conf *config.ScanConfig
}

func New(conf *config.ScanConfig) *Detector {
	return &Detector{
		conf: conf,
	}
}

func (d *Detector) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(d.conf.WorkDir, p)
}

// Detect runs the model on imagePath and decodes its JSON report.
func (d *Detector) Detect(ctx context.Context, imagePath string) (Result, error) {
	script, model := d.path(d.conf.Script), d.path(d.conf.Model)
	for _, p := range []string{script, model} {
		if _, err := os.Stat(p); err != nil {
			return Result{}, fmt.Errorf("%w: %s", ErrNotConfigured, p)
		}
	}

	timeout := d.conf.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{script, model, imagePath, strconv.FormatFloat(d.conf.Confidence, 'f', -1, 64)}
	if d.conf.Mode != "" {
		args = append(args, d.conf.Mode)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.conf.Command, args...)
	cmd.Dir = d.conf.WorkDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}

		msg := strings.TrimSpace(stderr.String())
		zap.L().Error("pin detector exited with error",
			zap.String("image", imagePath), zap.String("stderr", msg), zap.Error(err))
		if msg == "" {
			msg = err.Error()
		}

		return Result{}, fmt.Errorf("%w: %s", ErrFailed, msg)
	}

	var result Result
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &result); err != nil {
		zap.L().Error("pin detector printed invalid json",
			zap.String("image", imagePath), zap.String("stdout", stdout.String()), zap.Error(err))

		return Result{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if result.Detections == nil {
		result.Detections = []Detection{}
	}
	for i := range result.Detections {
		if crop := result.Detections[i].Crop; crop != "" {
			result.Detections[i].Crop = d.path(crop)
		}
	}

	return result, nil
}
