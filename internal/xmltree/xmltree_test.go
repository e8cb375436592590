package xmltree

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<class modifiers="public" extends="java.lang.Object">
  <description>A growable array of characters.</description>
  <method name="append" modifiers="public">
    <parameter type="java.lang.String"/>
  </method>
  <method name="length" modifiers="public"/>
</class>`

func TestParse(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if root.Name != "class" {
		t.Errorf("root.Name = %q, want %q", root.Name, "class")
	}
	if got := root.Attr("modifiers"); got != "public" {
		t.Errorf(`Attr("modifiers") = %q, want %q`, got, "public")
	}
	if got := root.Attr("missing"); got != "" {
		t.Errorf(`Attr("missing") = %q, want ""`, got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"unclosed element", "<class><method name='a'>"},
		{"mismatched tags", "<class></method>"},
		{"multiple roots", "<a/><b/>"},
		{"bare text", "not xml at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.doc)
			}
		})
	}
}

func TestSelectFirst(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	desc := root.SelectFirst("description")
	if desc == nil {
		t.Fatal(`SelectFirst("description") = nil`)
	}
	if got := strings.TrimSpace(desc.Text()); got != "A growable array of characters." {
		t.Errorf("description text = %q", got)
	}

	param := root.SelectFirst("method/parameter")
	if param == nil {
		t.Fatal(`SelectFirst("method/parameter") = nil`)
	}
	if got := param.Attr("type"); got != "java.lang.String" {
		t.Errorf("parameter type = %q, want %q", got, "java.lang.String")
	}

	if n := root.SelectFirst("no/such/path"); n != nil {
		t.Errorf(`SelectFirst("no/such/path") = %v, want nil`, n)
	}
}

func TestSelect(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	methods := root.Select("method")
	if len(methods) != 2 {
		t.Fatalf(`Select("method") returned %d nodes, want 2`, len(methods))
	}
	if got := methods[0].Attr("name"); got != "append" {
		t.Errorf("methods[0] name = %q, want %q", got, "append")
	}
	if got := methods[1].Attr("name"); got != "length" {
		t.Errorf("methods[1] name = %q, want %q", got, "length")
	}

	if nodes := root.Select("method/missing"); nodes != nil {
		t.Errorf(`Select("method/missing") = %v, want nil`, nodes)
	}
}

func TestTextNested(t *testing.T) {
	root, err := Parse(strings.NewReader(`<d>outer <code>inner</code> tail</d>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// Own character data first, then nested elements.
	if got := root.Text(); !strings.Contains(got, "inner") {
		t.Errorf("Text() = %q, want inner text included", got)
	}
}
