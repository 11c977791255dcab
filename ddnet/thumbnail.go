package ddnet

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GenerateThumbnail runs the thumbnail script against a map file previously
// written to <dataDir>/maps/<filename> and returns the path of the produced
// image. Failures are for the caller to log; they never block the workflow.
func GenerateThumbnail(ctx context.Context, dataDir, filename string) (string, error) {
	cmd := exec.CommandContext(ctx, filepath.Join(dataDir, "generate_thumbnail.sh"), filename)
	cmd.Dir = dataDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("thumbnail script: %w: %s", err, stderr.String())
	}
	if stderr.Len() > 0 {
		return "", fmt.Errorf("thumbnail script: %s", stderr.String())
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join(dataDir, "thumbnails", stem+".png"), nil
}
