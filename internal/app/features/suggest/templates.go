// internal/app/features/suggest/templates.go
package suggest

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "suggest",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
