package interfaces

import "io"

// TemplateRenderer renders named page layouts. When out is supplied the
// output is also streamed to it.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	// Templates lists the layout names the renderer can produce.
	Templates() []string
}
