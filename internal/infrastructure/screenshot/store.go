// Package screenshot keeps failure artifacts on disk, a screenshot and a
// cleaned HTML snapshot per run.
package screenshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/snapshot"
)

const maxWidth = 1024

var (
	ErrEmpty    = errors.New("empty screenshot")
	ErrDisabled = errors.New("screenshot store disabled")
)

type Store struct {
	dir string
}

// NewStore returns nil for an empty dir, which disables capture.
func NewStore(dir string) *Store {
	if dir == "" {
		return nil
	}
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Save writes shot as <dir>/<name>.jpg, downscaled to 1024px wide, and
// returns the path.
func (s *Store) Save(shot *entity.Screenshot, name string) (string, error) {
	if s == nil {
		return "", ErrDisabled
	}
	if shot == nil || len(shot.Data) == 0 {
		return "", ErrEmpty
	}
	img, err := imaging.Decode(bytes.NewReader(shot.Data))
	if err != nil {
		return "", fmt.Errorf("decode screenshot: %w", err)
	}
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := filepath.Join(s.dir, name+".jpg")
	if err := imaging.Save(img, path, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return path, nil
}

// SaveSnapshot cleans markup and writes it as <dir>/<name>.html.
func (s *Store) SaveSnapshot(markup, name string) (string, error) {
	if s == nil {
		return "", ErrDisabled
	}
	if strings.TrimSpace(markup) == "" {
		return "", errors.New("empty snapshot")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := filepath.Join(s.dir, name+".html")
	if err := os.WriteFile(path, []byte(snapshot.Clean(markup, nil)), 0644); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return path, nil
}

// Artifacts are the paths written for one failed run. Empty means not saved.
type Artifacts struct {
	Screenshot string `json:"screenshot,omitempty"`
	Snapshot   string `json:"snapshot,omitempty"`
}

// Capture saves whatever the browser can still give for the failed run name.
// Errors are logged and leave the matching path empty.
func (s *Store) Capture(ctx context.Context, browser output.BrowserPort, name string, log output.LoggerPort) Artifacts {
	var out Artifacts
	if s == nil || browser == nil {
		return out
	}

	if shot, err := browser.Screenshot(ctx); err != nil {
		log.Warn("Failure screenshot failed", "run_id", name, "error", err)
	} else if out.Screenshot, err = s.Save(shot, name); err != nil {
		log.Warn("Failure screenshot not saved", "run_id", name, "error", err)
	}

	if markup, err := browser.HTML(ctx); err != nil {
		log.Warn("Failure snapshot failed", "run_id", name, "error", err)
	} else if out.Snapshot, err = s.SaveSnapshot(markup, name); err != nil {
		log.Warn("Failure snapshot not saved", "run_id", name, "error", err)
	}
	return out
}
