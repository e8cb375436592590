// Package javadoc reads packaged javadoc archives: zip files holding
// one XML entry per documented class plus an optional descriptor entry
// at the root. It resolves dotted class names to entries, loads class
// documentation, and derives the address of the hosted javadoc page.
package javadoc

import (
	"path"
	"strings"
)

// entryExt is the file extension of class entries inside an archive.
const entryExt = ".xml"

// ClassName identifies a Java class: its package, the chain of
// enclosing classes for nested types, and the simple name. The zero
// value is the empty name.
type ClassName struct {
	Package string   // dot separated, "" for the default package
	Outer   []string // enclosing classes, outermost first
	Simple  string
}

// ParseClassName splits a dotted fully-qualified name into package and
// simple name. A bare dotted string cannot tell a package segment from
// an enclosing class, so everything before the last dot is treated as
// the package.
func ParseClassName(fqn string) ClassName {
	i := strings.LastIndex(fqn, ".")
	if i < 0 {
		return ClassName{Simple: fqn}
	}
	return ClassName{Package: fqn[:i], Simple: fqn[i+1:]}
}

// classNameFromEntry recovers a class name from an archive entry path.
// Directories form the package; the file name, without its extension,
// is the dot-separated chain of enclosing classes ending in the simple
// name.
func classNameFromEntry(entry string) ClassName {
	dir, file := path.Split(strings.TrimPrefix(entry, "/"))
	file = strings.TrimSuffix(file, entryExt)

	var n ClassName
	if dir != "" {
		n.Package = strings.ReplaceAll(strings.TrimSuffix(dir, "/"), "/", ".")
	}
	parts := strings.Split(file, ".")
	n.Simple = parts[len(parts)-1]
	if len(parts) > 1 {
		n.Outer = parts[:len(parts)-1]
	}
	return n
}

// FullyQualified returns the dotted form of the name, for example
// "java.util.Map.Entry".
func (n ClassName) FullyQualified() string {
	var sb strings.Builder
	if n.Package != "" {
		sb.WriteString(n.Package)
		sb.WriteString(".")
	}
	for _, outer := range n.Outer {
		sb.WriteString(outer)
		sb.WriteString(".")
	}
	sb.WriteString(n.Simple)
	return sb.String()
}

// EntryPath returns the archive entry that holds this class, for
// example "java/util/Map.Entry.xml".
func (n ClassName) EntryPath() string {
	var sb strings.Builder
	if n.Package != "" {
		sb.WriteString(strings.ReplaceAll(n.Package, ".", "/"))
		sb.WriteString("/")
	}
	for _, outer := range n.Outer {
		sb.WriteString(outer)
		sb.WriteString(".")
	}
	sb.WriteString(n.Simple)
	sb.WriteString(entryExt)
	return sb.String()
}
