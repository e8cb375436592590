package javadoc

import (
	"strings"

	"jdex/internal/xmltree"
)

// metadataEntry is the reserved entry at the archive root describing
// the archive itself. It never counts as a class.
const metadataEntry = "info.xml"

// Metadata holds the descriptor fields of an archive. Every field is
// optional; archives without a descriptor leave all of them empty.
type Metadata struct {
	Name       string // display name of the library
	Version    string // library version the documentation was built from
	ProjectURL string // home page of the library
	BaseURL    string // root of the hosted javadoc, "" or ending in "/"
	URLPattern string // template overriding the standard page layout, see urls.go
}

// metadataFromNode extracts descriptor fields from the root element of
// info.xml. A document with an unexpected root element carries no
// metadata, which is not an error.
func metadataFromNode(root *xmltree.Node) Metadata {
	if root == nil || root.Name != "info" {
		return Metadata{}
	}

	m := Metadata{
		Name:       root.Attr("name"),
		Version:    root.Attr("version"),
		ProjectURL: root.Attr("projectUrl"),
		BaseURL:    root.Attr("baseUrl"),
		URLPattern: root.Attr("javadocUrlPattern"),
	}
	if m.BaseURL != "" && !strings.HasSuffix(m.BaseURL, "/") {
		m.BaseURL += "/"
	}
	return m
}
