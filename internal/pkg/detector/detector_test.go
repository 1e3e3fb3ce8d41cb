package detector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinswap/api/internal/config"
)

// newTestDetector writes script as a shell script next to an empty model file.
func newTestDetector(t *testing.T, script string, timeout time.Duration) *Detector {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detect.sh"), []byte(script), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "best.pt"), nil, 0o600))

	return New(&config.ScanConfig{
		Command:    "sh",
		Script:     "detect.sh",
		Model:      "best.pt",
		WorkDir:    dir,
		Confidence: 0.25,
		Mode:       "ocr",
		Timeout:    timeout,
	})
}

func TestDetector_Detect(t *testing.T) {
	d := newTestDetector(t, `
[ "$3" = "0.25" ] && [ "$4" = "ocr" ] || { echo "bad args: $*" >&2; exit 2; }
printf '{"detections":[{"box":[1,2,30,40],"score":0.9,"confidence":0.9,"class":1,"label":"AA","crop":"tmp_crops/pin_crop_0.jpg","ocr":""}],"total_points":10}'
`, time.Second)

	result, err := d.Detect(context.Background(), "/tmp/pin.jpg")
	require.NoError(t, err)

	require.Len(t, result.Detections, 1)
	assert.Equal(t, "AA", result.Detections[0].Label)
	assert.Equal(t, []int{1, 2, 30, 40}, result.Detections[0].Box)
	assert.Equal(t, filepath.Join(d.conf.WorkDir, "tmp_crops/pin_crop_0.jpg"), result.Detections[0].Crop)
	assert.Equal(t, 10, result.TotalPoints)
}

func TestDetector_Detect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		timeout time.Duration
		wantErr error
		wantMsg string
	}{
		{
			name:    "non-zero exit",
			script:  "echo 'model exploded' >&2; exit 3",
			timeout: time.Second,
			wantErr: ErrFailed,
			wantMsg: "model exploded",
		},
		{
			name:    "invalid json",
			script:  "echo 'not json'",
			timeout: time.Second,
			wantErr: ErrInvalidOutput,
		},
		{
			name:    "timeout",
			script:  "exec sleep 5",
			timeout: 100 * time.Millisecond,
			wantErr: ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestDetector(t, tt.script, tt.timeout).Detect(context.Background(), "/tmp/pin.jpg")
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDetector_Detect_MissingModel(t *testing.T) {
	d := New(&config.ScanConfig{
		Command: "sh",
		Script:  "detect.sh",
		Model:   "best.pt",
		WorkDir: t.TempDir(),
	})

	_, err := d.Detect(context.Background(), "/tmp/pin.jpg")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
