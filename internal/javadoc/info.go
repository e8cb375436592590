package javadoc

import (
	"errors"
	"fmt"
	"strings"

	"jdex/internal/xmltree"
)

// ErrMalformedEntry reports a class entry whose content is not a
// javadoc class document. It means the archive is damaged or was built
// incorrectly, which is different from the class being absent.
var ErrMalformedEntry = errors.New("malformed class entry")

// classEntryRoot is the required root element of a class entry.
const classEntryRoot = "class"

// ClassInfo is the documentation recorded for one class.
type ClassInfo struct {
	Name        ClassName
	Modifiers   string
	Extends     string
	Since       string
	Deprecated  bool
	Description string // markdown
	Methods     []MethodInfo

	// DocumentationURL is the non-framed page address, or "" when the
	// archive does not say where its documentation is hosted.
	DocumentationURL string

	// Source is the archive the class was read from.
	Source *Archive
}

// MethodInfo is the documentation recorded for one method.
type MethodInfo struct {
	Name        string
	Modifiers   string
	Deprecated  bool
	Parameters  []string // parameter types in declaration order
	Description string   // markdown
}

// Signature renders the method as it would appear in a declaration,
// for example "append(java.lang.String, int)".
func (m MethodInfo) Signature() string {
	return m.Name + "(" + strings.Join(m.Parameters, ", ") + ")"
}

// parseClassInfo builds a ClassInfo from a parsed class entry. The
// class name always comes from the entry path, never from the entry
// body. Missing attributes read as empty, matching how missing
// descriptor fields behave.
func parseClassInfo(root *xmltree.Node, name ClassName, src *Archive) (*ClassInfo, error) {
	if root.Name != classEntryRoot {
		return nil, fmt.Errorf("entry %s: root element is <%s>, want <%s>: %w",
			name.EntryPath(), root.Name, classEntryRoot, ErrMalformedEntry)
	}

	info := &ClassInfo{
		Name:       name,
		Modifiers:  root.Attr("modifiers"),
		Extends:    root.Attr("extends"),
		Since:      root.Attr("since"),
		Deprecated: root.Attr("deprecated") == "true",
		Source:     src,
	}
	if d := root.SelectFirst("description"); d != nil {
		info.Description = strings.TrimSpace(d.Text())
	}

	for _, m := range root.Select("method") {
		method := MethodInfo{
			Name:       m.Attr("name"),
			Modifiers:  m.Attr("modifiers"),
			Deprecated: m.Attr("deprecated") == "true",
		}
		for _, p := range m.Select("parameter") {
			method.Parameters = append(method.Parameters, p.Attr("type"))
		}
		if d := m.SelectFirst("description"); d != nil {
			method.Description = strings.TrimSpace(d.Text())
		}
		info.Methods = append(info.Methods, method)
	}

	if src != nil {
		info.DocumentationURL = src.DocumentationURL(name, false)
	}
	return info, nil
}
