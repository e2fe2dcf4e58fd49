package pipeline

import (
	"context"
	"os/exec"
	"runtime"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// Displayer shows a written image to the user.
type Displayer interface {
	Show(ctx context.Context, path string) error
}

// DisplayFunc adapts a function to the Displayer interface.
type DisplayFunc func(ctx context.Context, path string) error

// Show calls f(ctx, path).
func (f DisplayFunc) Show(ctx context.Context, path string) error { return f(ctx, path) }

// SystemDisplayer opens images with the platform's default viewer. It
// starts the viewer and returns without waiting for it to exit.
type SystemDisplayer struct{}

// Show implements Displayer.
func (SystemDisplayer) Show(ctx context.Context, path string) error {
	cmd, err := viewerCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return herrors.Wrap(herrors.ErrCodeUnsupported, err, "start %s", cmd.Path)
	}
	// reap the viewer process
	go func() { _ = cmd.Wait() }()
	return nil
}

// viewerCommand returns the command that opens path on goos.
func viewerCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, herrors.New(herrors.ErrCodeUnsupported, "no image viewer known for %s", goos)
	}
}
