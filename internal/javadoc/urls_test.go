package javadoc

import "testing"

func TestDocumentationURLStandard(t *testing.T) {
	a := &Archive{meta: Metadata{BaseURL: "https://docs.example.com/api/"}}

	tests := []struct {
		name   ClassName
		frames bool
		want   string
	}{
		{ClassName{Package: "java.util", Simple: "Map"}, false,
			"https://docs.example.com/api/java/util/Map.html"},
		{ClassName{Package: "java.util", Outer: []string{"Map"}, Simple: "Entry"}, false,
			"https://docs.example.com/api/java/util/Map.Entry.html"},
		{ClassName{Package: "java.util", Simple: "Map"}, true,
			"https://docs.example.com/api/index.html?java/util/Map.html"},
		{ClassName{Simple: "Foo"}, false,
			"https://docs.example.com/api/Foo.html"},
	}

	for _, tt := range tests {
		got := a.DocumentationURL(tt.name, tt.frames)
		if got != tt.want {
			t.Errorf("DocumentationURL(%q, frames=%v) = %q, want %q",
				tt.name.FullyQualified(), tt.frames, got, tt.want)
		}
	}
}

func TestDocumentationURLNoBase(t *testing.T) {
	a := &Archive{}
	if got := a.DocumentationURL(ClassName{Package: "java.util", Simple: "Map"}, false); got != "" {
		t.Errorf(`DocumentationURL without base URL = %q, want ""`, got)
	}
}

func TestDocumentationURLPattern(t *testing.T) {
	name := ClassName{Package: "com.example", Simple: "Foo"}

	tests := []struct {
		pattern string
		want    string
	}{
		{"{baseUrl}{full -}", "http://x/com-example-Foo"},
		{"{baseUrl}{full}.html", "http://x/com.example.Foo.html"},
		{"{baseUrl}doc?class={full /}", "http://x/doc?class=com/example/Foo"},
		{"{bogus}{full}", "com.example.Foo"},
		{"literal-only", "literal-only"},
		{"{full }", "comexampleFoo"},
	}

	for _, tt := range tests {
		a := &Archive{meta: Metadata{BaseURL: "http://x/", URLPattern: tt.pattern}}
		if got := a.DocumentationURL(name, false); got != tt.want {
			t.Errorf("pattern %q = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestDocumentationURLPatternIgnoresFrames(t *testing.T) {
	a := &Archive{meta: Metadata{BaseURL: "http://x/", URLPattern: "{baseUrl}{full -}"}}
	name := ClassName{Package: "com.example", Simple: "Foo"}

	want := "http://x/com-example-Foo"
	if got := a.DocumentationURL(name, true); got != want {
		t.Errorf("DocumentationURL(frames=true) = %q, want %q", got, want)
	}
}

func TestDocumentationURLPatternNoBase(t *testing.T) {
	// A pattern that references {baseUrl} when the descriptor declares
	// none substitutes the empty string.
	a := &Archive{meta: Metadata{URLPattern: "{baseUrl}{full -}"}}
	name := ClassName{Package: "com.example", Simple: "Foo"}

	if got := a.DocumentationURL(name, false); got != "com-example-Foo" {
		t.Errorf("DocumentationURL = %q, want %q", got, "com-example-Foo")
	}
}
