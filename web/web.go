// Package web holds the HTML templates of the scoring UI.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// NewEngine returns a fiber view engine over the embedded templates.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(map[string]interface{}{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
		"score": func(v float64) string {
			return fmt.Sprintf("%.3f", v)
		},
		"join": func(items []string) string {
			return strings.Join(items, ", ")
		},
	})
	return engine, nil
}
