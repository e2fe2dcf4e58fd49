package pipeline

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// kdeOutput returns the KDE output path: explicit when set, otherwise the
// title with a .png extension in the working directory.
func kdeOutput(output, title string) (string, error) {
	if output != "" {
		return output, nil
	}
	name := title + ".png"
	if err := herrors.ValidateFileName(name); err != nil {
		return "", herrors.Wrap(herrors.ErrCodeInvalidPath, err, "title %q cannot name the output file", title)
	}
	return name, nil
}

// WriteFile replaces path with data. The data is written to a temporary
// file in the same directory (fixed-length name, so any legal path can be
// written) and renamed over path, so readers see either
// the old or the new image. Failures are reported as ErrCodeOutput.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return herrors.Wrap(herrors.ErrCodeOutput, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return herrors.Wrap(herrors.ErrCodeOutput, err, "write %s", path)
	}
	return nil
}
