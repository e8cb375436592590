package javadoc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"jdex/internal/xmltree"
)

// Archive is one packaged javadoc file on disk. The zip is reopened
// for every operation, so an Archive holds no file handle between
// calls and a single value may be shared across goroutines.
type Archive struct {
	path string // absolute, symlinks resolved
	meta Metadata
}

// OpenArchive verifies that the file is a readable archive and loads
// its descriptor. The path is resolved through symlinks first; two
// archives are the same archive exactly when their resolved paths are
// equal.
func OpenArchive(path string) (*Archive, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	a := &Archive{path: resolved}
	r, err := a.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	meta, err := readMetadata(&r.Reader)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", a.path, err)
	}
	a.meta = meta
	return a, nil
}

// Path returns the resolved location of the archive on disk.
func (a *Archive) Path() string { return a.path }

// Metadata returns the descriptor fields. Absent fields are empty.
func (a *Archive) Metadata() Metadata { return a.meta }

func (a *Archive) open() (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", a.path, err)
	}
	return r, nil
}

// entryName strips the leading slash some archive builders put on
// entry paths.
func entryName(f *zip.File) string {
	return strings.TrimPrefix(f.Name, "/")
}

// readMetadata loads the descriptor entry. A missing descriptor means
// no metadata, not an error; a descriptor that is not well-formed XML
// is an error.
func readMetadata(r *zip.Reader) (Metadata, error) {
	for _, f := range r.File {
		if entryName(f) != metadataEntry {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return Metadata{}, fmt.Errorf("read %s: %w", metadataEntry, err)
		}
		defer rc.Close()

		root, err := xmltree.Parse(rc)
		if err != nil {
			return Metadata{}, fmt.Errorf("read %s: %w", metadataEntry, err)
		}
		return metadataFromNode(root), nil
	}
	return Metadata{}, nil
}

// ClassNames lists every class documented in the archive. Any entry
// with the class extension is a class except the root descriptor;
// nothing inside the entries is read.
func (a *Archive) ClassNames() ([]ClassName, error) {
	r, err := a.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []ClassName
	for _, f := range r.File {
		name := entryName(f)
		if f.FileInfo().IsDir() || !strings.HasSuffix(name, entryExt) || name == metadataEntry {
			continue
		}
		names = append(names, classNameFromEntry(name))
	}
	return names, nil
}

// ClassInfo loads the documentation for a fully-qualified class name,
// matched case-sensitively. It returns nil with a nil error when the
// archive does not document the class.
func (a *Archive) ClassInfo(fqn string) (*ClassInfo, error) {
	r, err := a.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f := findClassEntry(&r.Reader, fqn)
	if f == nil {
		return nil, nil
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", entryName(f), err)
	}
	defer rc.Close()

	root, err := xmltree.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %v: %w", entryName(f), err, ErrMalformedEntry)
	}
	return parseClassInfo(root, classNameFromEntry(entryName(f)), a)
}

// findClassEntry locates the entry documenting a dotted name. A dot
// can separate two packages or an enclosing class from a nested class,
// so every split point is tried, starting with all leading segments as
// the package directory and promoting segments to the class chain one
// at a time: "java.util.Map.Entry" tries java/util/Map/Entry.xml, then
// java/util/Map.Entry.xml, then java/util.Map.Entry.xml, and so on.
func findClassEntry(r *zip.Reader, fqn string) *zip.File {
	entries := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		if name := entryName(f); name != metadataEntry {
			entries[name] = f
		}
	}

	segments := strings.Split(fqn, ".")
	for i := len(segments); i > 0; i-- {
		var sb strings.Builder
		sb.WriteString(strings.Join(segments[:i], "/"))
		for _, s := range segments[i:] {
			sb.WriteString(".")
			sb.WriteString(s)
		}
		sb.WriteString(entryExt)

		if f, ok := entries[sb.String()]; ok {
			return f
		}
	}
	return nil
}
