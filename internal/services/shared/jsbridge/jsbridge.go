// Package jsbridge executes JavaScript snippets against server-rendered
// elements.
//
// Snippets reference their arguments positionally as $0, $1, ... and each
// argument is bound either to a DOM element (by id) or to a JSON value.
package jsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Arg is one positional snippet argument.
type Arg struct {
	elementID string
	value     any
	isElement bool
}

// Element binds an argument to the element with the given id.
func Element(id string) Arg {
	return Arg{elementID: id, isElement: true}
}

// Value binds an argument to a JSON-encodable value.
func Value(v any) Arg {
	return Arg{value: v}
}

func (a Arg) expression() (string, error) {
	if a.isElement {
		id := strings.TrimSpace(a.elementID)
		if id == "" {
			return "", fmt.Errorf("element id is required")
		}
		encoded, err := json.Marshal(id)
		if err != nil {
			return "", err
		}
		return "document.getElementById(" + string(encoded) + ")", nil
	}
	encoded, err := json.Marshal(a.value)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return string(encoded), nil
}

// Expression binds args into script and returns the resulting JavaScript.
//
// Placeholders are read greedily ($10 is argument ten, not $1 followed by
// "0") and substituted in a single pass, so bound values are never rescanned.
// Placeholders without a matching argument are left untouched.
func Expression(script string, args ...Arg) (string, error) {
	if strings.TrimSpace(script) == "" {
		return "", fmt.Errorf("script is required")
	}
	exprs := make([]string, len(args))
	for i, arg := range args {
		expr, err := arg.expression()
		if err != nil {
			return "", fmt.Errorf("argument $%d: %w", i, err)
		}
		exprs[i] = expr
	}

	var out strings.Builder
	for i := 0; i < len(script); i++ {
		if script[i] != '$' {
			out.WriteByte(script[i])
			continue
		}
		j := i + 1
		for j < len(script) && script[j] >= '0' && script[j] <= '9' {
			j++
		}
		index, err := strconv.Atoi(script[i+1 : j])
		if j == i+1 || err != nil || index >= len(exprs) {
			out.WriteByte(script[i])
			continue
		}
		out.WriteString(exprs[index])
		i = j - 1
	}
	return out.String(), nil
}

// Execute returns a component that emits a <script> running script with args
// once the surrounding markup is in the document. Bound values are JSON
// encoded with HTML escaping, so they cannot close the script element.
func Execute(script string, args ...Arg) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		expr, err := Expression(script, args...)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "<script>"+expr+"</script>")
		return err
	})
}
