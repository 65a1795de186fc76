// Package export encodes report tables into downloadable documents.
package export

import (
	"strings"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/report"
)

// Renderer turns a table into the bytes of one document format.
type Renderer interface {
	Format() string
	ContentType() string
	Render(table report.Table) ([]byte, error)
}

// Registry looks up renderers by format name.
type Registry struct {
	renderers map[string]Renderer
}

func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		r.renderers[renderer.Format()] = renderer
	}
	return r
}

// DefaultRegistry serves csv and pdf.
func DefaultRegistry() *Registry {
	return NewRegistry(NewCSVRenderer(), NewPDFRenderer())
}

func (r *Registry) Get(format string) (Renderer, error) {
	renderer, ok := r.renderers[strings.ToLower(format)]
	if !ok {
		return nil, apperr.NewInvalidFieldError("format", format, "must be csv or pdf")
	}
	return renderer, nil
}
