package javadoc

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// writeArchive builds a zip in a fresh temp dir and returns its path.
func writeArchive(t *testing.T, name string, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}

	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("create entry %s: %v", entry, err)
		}
		if _, err := io.WriteString(w, content); err != nil {
			t.Fatalf("write entry %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

const guavaInfoXML = `<info name="Guava" version="33.0" projectUrl="https://github.com/google/guava" baseUrl="https://guava.dev/releases/33.0/api/docs"/>`

const mapClassXML = `<class modifiers="public interface" since="1.2">
  <description>An object that maps keys to values.</description>
  <method name="get" modifiers="public">
    <parameter type="java.lang.Object"/>
    <description>Returns the value to which the specified key is mapped.</description>
  </method>
  <method name="clear" modifiers="public"/>
</class>`

func TestOpenArchiveMetadata(t *testing.T) {
	path := writeArchive(t, "guava.zip", map[string]string{
		"info.xml": guavaInfoXML,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}

	meta := a.Metadata()
	if meta.Name != "Guava" {
		t.Errorf("Name = %q, want %q", meta.Name, "Guava")
	}
	if meta.Version != "33.0" {
		t.Errorf("Version = %q, want %q", meta.Version, "33.0")
	}
	if meta.ProjectURL != "https://github.com/google/guava" {
		t.Errorf("ProjectURL = %q", meta.ProjectURL)
	}
	// The base URL gains a trailing slash when the descriptor omits it.
	if meta.BaseURL != "https://guava.dev/releases/33.0/api/docs/" {
		t.Errorf("BaseURL = %q, want trailing slash", meta.BaseURL)
	}
}

func TestOpenArchiveNoDescriptor(t *testing.T) {
	path := writeArchive(t, "bare.zip", map[string]string{
		"Foo.xml": `<class/>`,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	if a.Metadata() != (Metadata{}) {
		t.Errorf("Metadata() = %+v, want zero value", a.Metadata())
	}
}

func TestOpenArchiveWrongDescriptorRoot(t *testing.T) {
	path := writeArchive(t, "odd.zip", map[string]string{
		"info.xml": `<other name="X" baseUrl="http://x"/>`,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	if a.Metadata() != (Metadata{}) {
		t.Errorf("Metadata() = %+v, want zero value", a.Metadata())
	}
}

func TestOpenArchiveBadDescriptor(t *testing.T) {
	path := writeArchive(t, "broken.zip", map[string]string{
		"info.xml": `<info name="X"`,
	})

	if _, err := OpenArchive(path); err == nil {
		t.Fatal("OpenArchive() expected error for unparseable descriptor")
	}
}

func TestOpenArchiveErrors(t *testing.T) {
	if _, err := OpenArchive(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Error("OpenArchive() on a missing file expected error")
	}

	notZip := filepath.Join(t.TempDir(), "notzip.zip")
	if err := os.WriteFile(notZip, []byte("this is not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenArchive(notZip); err == nil {
		t.Error("OpenArchive() on a non-zip file expected error")
	}
}

func TestArchivePathResolvesSymlinks(t *testing.T) {
	path := writeArchive(t, "real.zip", map[string]string{"Foo.xml": `<class/>`})
	link := filepath.Join(t.TempDir(), "link.zip")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	direct, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	viaLink, err := OpenArchive(link)
	if err != nil {
		t.Fatal(err)
	}
	if direct.Path() != viaLink.Path() {
		t.Errorf("Path() mismatch: %q vs %q", direct.Path(), viaLink.Path())
	}
}

func TestClassNames(t *testing.T) {
	path := writeArchive(t, "lib.zip", map[string]string{
		"info.xml":                guavaInfoXML,
		"java/lang/String.xml":    `<class/>`,
		"java/util/Map.xml":       mapClassXML,
		"java/util/Map.Entry.xml": `<class/>`,
		"Foo.xml":                 `<class/>`,
		"sub/info.xml":            `<class/>`,
		"notes.txt":               "not a class",
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	names, err := a.ClassNames()
	if err != nil {
		t.Fatalf("ClassNames() error = %v", err)
	}

	var fqns []string
	for _, n := range names {
		fqns = append(fqns, n.FullyQualified())
	}
	sort.Strings(fqns)

	// The root descriptor and non-class entries are excluded; a nested
	// info.xml is an ordinary class.
	want := []string{"Foo", "java.lang.String", "java.util.Map", "java.util.Map.Entry", "sub.info"}
	if !reflect.DeepEqual(fqns, want) {
		t.Errorf("ClassNames() = %v, want %v", fqns, want)
	}
}

func TestClassInfo(t *testing.T) {
	path := writeArchive(t, "lib.zip", map[string]string{
		"info.xml":          guavaInfoXML,
		"java/util/Map.xml": mapClassXML,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := a.ClassInfo("java.util.Map")
	if err != nil {
		t.Fatalf("ClassInfo() error = %v", err)
	}
	if info == nil {
		t.Fatal("ClassInfo() = nil, want class")
	}

	if got := info.Name.FullyQualified(); got != "java.util.Map" {
		t.Errorf("Name = %q", got)
	}
	if info.Modifiers != "public interface" {
		t.Errorf("Modifiers = %q", info.Modifiers)
	}
	if info.Since != "1.2" {
		t.Errorf("Since = %q", info.Since)
	}
	if info.Deprecated {
		t.Error("Deprecated = true, want false")
	}
	if !strings.Contains(info.Description, "maps keys to values") {
		t.Errorf("Description = %q", info.Description)
	}
	if len(info.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(info.Methods))
	}
	if got := info.Methods[0].Signature(); got != "get(java.lang.Object)" {
		t.Errorf("Methods[0].Signature() = %q", got)
	}
	if got := info.Methods[1].Signature(); got != "clear()" {
		t.Errorf("Methods[1].Signature() = %q", got)
	}
	want := "https://guava.dev/releases/33.0/api/docs/java/util/Map.html"
	if info.DocumentationURL != want {
		t.Errorf("DocumentationURL = %q, want %q", info.DocumentationURL, want)
	}
	if info.Source != a {
		t.Error("Source does not point back to the archive")
	}
}

func TestClassInfoNested(t *testing.T) {
	path := writeArchive(t, "lib.zip", map[string]string{
		"java/util/Map.Entry.xml": `<class modifiers="public static interface"/>`,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := a.ClassInfo("java.util.Map.Entry")
	if err != nil {
		t.Fatalf("ClassInfo() error = %v", err)
	}
	if info == nil {
		t.Fatal("ClassInfo() = nil, want nested class")
	}
	want := ClassName{Package: "java.util", Outer: []string{"Map"}, Simple: "Entry"}
	if !reflect.DeepEqual(info.Name, want) {
		t.Errorf("Name = %+v, want %+v", info.Name, want)
	}
}

func TestClassInfoPrefersDeepestPackage(t *testing.T) {
	// When both interpretations of a dotted name exist, the one with
	// more package segments wins.
	path := writeArchive(t, "lib.zip", map[string]string{
		"java/util/Map/Entry.xml": `<class><description>top-level</description></class>`,
		"java/util/Map.Entry.xml": `<class><description>nested</description></class>`,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := a.ClassInfo("java.util.Map.Entry")
	if err != nil {
		t.Fatal(err)
	}
	if info == nil {
		t.Fatal("ClassInfo() = nil")
	}
	if info.Description != "top-level" {
		t.Errorf("Description = %q, want %q", info.Description, "top-level")
	}
	if info.Name.Package != "java.util.Map" {
		t.Errorf("Package = %q, want %q", info.Name.Package, "java.util.Map")
	}
}

func TestClassInfoNotFound(t *testing.T) {
	path := writeArchive(t, "lib.zip", map[string]string{
		"java/util/Map.xml": mapClassXML,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, fqn := range []string{"java.util.List", "java.util.map", "Map", ""} {
		info, err := a.ClassInfo(fqn)
		if err != nil {
			t.Errorf("ClassInfo(%q) error = %v, want nil", fqn, err)
		}
		if info != nil {
			t.Errorf("ClassInfo(%q) = %+v, want nil", fqn, info)
		}
	}
}

func TestClassInfoDescriptorIsNotAClass(t *testing.T) {
	path := writeArchive(t, "lib.zip", map[string]string{
		"info.xml": guavaInfoXML,
	})

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := a.ClassInfo("info")
	if err != nil {
		t.Fatalf("ClassInfo(%q) error = %v", "info", err)
	}
	if info != nil {
		t.Errorf("ClassInfo(%q) resolved the descriptor entry", "info")
	}
}

func TestClassInfoMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated xml", `<class modifiers="public"`},
		{"wrong root element", `<project name="pom"/>`},
		{"not xml", "garbage bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArchive(t, "bad.zip", map[string]string{
				"com/example/Bad.xml": tt.content,
			})

			a, err := OpenArchive(path)
			if err != nil {
				t.Fatal(err)
			}
			_, err = a.ClassInfo("com.example.Bad")
			if !errors.Is(err, ErrMalformedEntry) {
				t.Errorf("ClassInfo() error = %v, want ErrMalformedEntry", err)
			}
		})
	}
}
