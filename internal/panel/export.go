package panel

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/Versifine/folio/internal/catalog"
)

type Result struct {
	ProjectID string
	Path      string
	Error     string
}

// ExportWebP writes <id>.webp for every project plus welcome.webp into dir.
// A project whose icon fails to load is still exported without it.
func ExportWebP(dir string, cat *catalog.Catalog) ([]Result, error) {
	if cat == nil {
		return nil, catalog.ErrNoProjects
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("panel: create %s: %w", dir, err)
	}

	results := make([]Result, 0, len(cat.Projects)+1)
	for _, p := range cat.Projects {
		var icon image.Image
		if p.Icon != "" {
			var err error
			if icon, err = LoadIcon(p.Icon); err != nil {
				slog.Warn("Skipping panel icon", "project", p.ID, "error", err)
			}
		}
		results = append(results, writeWebP(filepath.Join(dir, p.ID+".webp"), p.ID, Render(p, icon)))
	}
	results = append(results, writeWebP(filepath.Join(dir, "welcome.webp"), "welcome", RenderWelcome(cat.PersonalInfo)))

	for _, r := range results {
		if r.Error != "" {
			return results, fmt.Errorf("panel: export %s: %s", r.ProjectID, r.Error)
		}
	}
	return results, nil
}

func writeWebP(path, id string, img image.Image) Result {
	f, err := os.Create(path)
	if err != nil {
		return Result{ProjectID: id, Path: path, Error: err.Error()}
	}
	if err := encodeWebP(f, img); err != nil {
		return Result{ProjectID: id, Path: path, Error: err.Error()}
	}
	slog.Debug("Exported panel", "project", id, "path", path)
	return Result{ProjectID: id, Path: path}
}

// encodeWebP always closes w; a failed close means the file is incomplete.
func encodeWebP(w io.WriteCloser, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		_ = w.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
