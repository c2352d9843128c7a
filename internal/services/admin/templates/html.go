package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *htmlWriter) text(value string) {
	h.raw(templ.EscapeString(value))
}

func (h *htmlWriter) attr(name string, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" ", name)
	}
}

func (h *htmlWriter) component(ctx context.Context, component templ.Component) {
	if h.err != nil || component == nil {
		return
	}
	h.err = component.Render(ctx, h.w)
}

// render adapts a writer callback into a component.
func render(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
