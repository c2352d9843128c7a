// Package jsdialog renders an element whose behavior is delegated to the
// jQuery UI dialog widget. The server only sends the open and close snippets
// through the script bridge.
package jsdialog

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/beveragebuddy/internal/services/shared/jsbridge"
)

const (
	// ElementID is the id of the dialog element.
	ElementID = "dialog"
	// ScriptsID is the container that receives executed snippets.
	ScriptsID = "dialog-scripts"

	// OpenScript turns the element into a dialog.
	OpenScript = `jQuery($0).dialog({});`
	// CloseScript closes the dialog.
	CloseScript = `jQuery($0).dialog("close");`
)

// Default widget sources.
const (
	DefaultJQueryURL      = "https://code.jquery.com/jquery-3.7.1.min.js"
	DefaultJQueryUIURL    = "https://code.jquery.com/ui/1.13.3/jquery-ui.min.js"
	DefaultJQueryUICSSURL = "https://code.jquery.com/ui/1.13.3/themes/base/jquery-ui.min.css"
)

// Dependencies locates the widget scripts and stylesheet.
type Dependencies struct {
	JQueryURL      string
	JQueryUIURL    string
	JQueryUICSSURL string
}

// DefaultDependencies returns the public CDN sources.
func DefaultDependencies() Dependencies {
	return Dependencies{
		JQueryURL:      DefaultJQueryURL,
		JQueryUIURL:    DefaultJQueryUIURL,
		JQueryUICSSURL: DefaultJQueryUICSSURL,
	}
}

func (d Dependencies) withDefaults() Dependencies {
	defaults := DefaultDependencies()
	if strings.TrimSpace(d.JQueryURL) == "" {
		d.JQueryURL = defaults.JQueryURL
	}
	if strings.TrimSpace(d.JQueryUIURL) == "" {
		d.JQueryUIURL = defaults.JQueryUIURL
	}
	if strings.TrimSpace(d.JQueryUICSSURL) == "" {
		d.JQueryUICSSURL = defaults.JQueryUICSSURL
	}
	return d
}

// Head renders the stylesheet and scripts the widget needs, in load order.
func (d Dependencies) Head() templ.Component {
	d = d.withDefaults()
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<link rel="stylesheet" href="`+templ.EscapeString(d.JQueryUICSSURL)+`">`+
				`<script src="`+templ.EscapeString(d.JQueryURL)+`"></script>`+
				`<script src="`+templ.EscapeString(d.JQueryUIURL)+`"></script>`)
		return err
	})
}

// Options controls how the component renders.
type Options struct {
	// CloseURL receives a POST when the content is clicked.
	CloseURL string
	// InitialAttach runs the open snippet; re-renders leave the widget alone.
	InitialAttach bool
}

// Component renders the dialog element and, on initial attach, the open
// snippet.
func Component(opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="` + ElementID + `" title="Dialog"><p`)
		if url := strings.TrimSpace(opts.CloseURL); url != "" {
			b.WriteString(` hx-post="` + templ.EscapeString(url) + `" hx-target="#` + ScriptsID + `" hx-swap="innerHTML"`)
		}
		b.WriteString(`>Content</p></div><div id="` + ScriptsID + `">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if opts.InitialAttach {
			if err := Open().Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Open runs the open snippet against the dialog element.
func Open() templ.Component {
	return jsbridge.Execute(OpenScript, jsbridge.Element(ElementID))
}

// Close runs the close snippet against the dialog element.
func Close() templ.Component {
	return jsbridge.Execute(CloseScript, jsbridge.Element(ElementID))
}
