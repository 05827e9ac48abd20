// Package render draws the survey analysis charts as PNG files using
// gonum/plot.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Renderer writes charts into a single output directory.
type Renderer struct {
	dir    string
	logger *zap.Logger
}

// NewRenderer creates the output directory if needed.
func NewRenderer(dir string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	return &Renderer{dir: dir, logger: logger}, nil
}

func (r *Renderer) save(p *plot.Plot, w, h vg.Length, name string) (string, error) {
	path := filepath.Join(r.dir, name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("failed to save chart %s: %w", name, err)
	}
	r.logger.Info("chart written", zap.String("path", path))
	return path, nil
}
