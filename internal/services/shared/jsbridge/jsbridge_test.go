package jsbridge

import (
	"bytes"
	"context"
	"testing"
)

func TestExpressionBindsElementsAndValues(t *testing.T) {
	t.Parallel()

	got, err := Expression(`jQuery($0).dialog($1);`, Element("dialog"), Value(map[string]bool{"modal": true}))
	if err != nil {
		t.Fatalf("expression: %v", err)
	}
	want := `jQuery(document.getElementById("dialog")).dialog({"modal":true});`
	if got != want {
		t.Fatalf("Expression = %q, want %q", got, want)
	}
}

func TestExpressionReadsMultiDigitPlaceholders(t *testing.T) {
	t.Parallel()

	args := make([]Arg, 11)
	for i := range args {
		args[i] = Value(i)
	}
	got, err := Expression("f($1, $10)", args...)
	if err != nil {
		t.Fatalf("expression: %v", err)
	}
	if got != "f(1, 10)" {
		t.Fatalf("Expression = %q, want %q", got, "f(1, 10)")
	}
}

func TestExpressionDoesNotRescanBoundValues(t *testing.T) {
	t.Parallel()

	got, err := Expression("f($0, $1, $2)", Value("$1"), Value(7))
	if err != nil {
		t.Fatalf("expression: %v", err)
	}
	if got != `f("$1", 7, $2)` {
		t.Fatalf("Expression = %q, want %q", got, `f("$1", 7, $2)`)
	}
}

func TestExpressionRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := Expression("  "); err == nil {
		t.Fatal("expected empty script error")
	}
	if _, err := Expression("jQuery($0)", Element(" ")); err == nil {
		t.Fatal("expected missing element id error")
	}
	if _, err := Expression("f($0)", Value(func() {})); err == nil {
		t.Fatal("expected unencodable value error")
	}
}

func TestExecuteRendersScriptTag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Execute(`console.log($0)`, Value("</script>")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<script>console.log("\u003c/script\u003e")</script>`
	if got := buf.String(); got != want {
		t.Fatalf("Execute = %q, want %q", got, want)
	}
}
