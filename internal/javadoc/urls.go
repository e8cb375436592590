package javadoc

import (
	"regexp"
	"strings"
)

// urlField matches one {field} or {field delimiter} placeholder in a
// documentation URL pattern.
var urlField = regexp.MustCompile(`\{([^\s{}]*)(?:\s+([^{}]*))?\}`)

// DocumentationURL returns the address of the class's javadoc page. An
// archive may declare a URL pattern, which takes precedence; otherwise
// the page lives at the standard javadoc location under the base URL.
// frames routes through index.html so the page loads inside the frame
// set; it only applies to the standard layout. An empty result means
// the archive does not say where its documentation is hosted.
func (a *Archive) DocumentationURL(name ClassName, frames bool) string {
	if a.meta.URLPattern != "" {
		return expandURLPattern(a.meta.URLPattern, a.meta, name)
	}
	return standardURL(a.meta.BaseURL, name, frames)
}

// standardURL builds the conventional javadoc page address: base URL,
// package segments as directories, then the enclosing chain and simple
// name joined with dots, ending in ".html".
func standardURL(baseURL string, name ClassName, frames bool) string {
	if baseURL == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(baseURL)
	if frames {
		sb.WriteString("index.html?")
	}
	if name.Package != "" {
		sb.WriteString(strings.ReplaceAll(name.Package, ".", "/"))
		sb.WriteString("/")
	}
	for _, outer := range name.Outer {
		sb.WriteString(outer)
		sb.WriteString(".")
	}
	sb.WriteString(name.Simple)
	sb.WriteString(".html")
	return sb.String()
}

// expandURLPattern substitutes the placeholders of a declared URL
// pattern. "{baseUrl}" inserts the archive's base URL, "{full}" the
// fully-qualified class name, and "{full d}" the fully-qualified name
// with every dot replaced by d. A placeholder naming anything else
// expands to nothing.
func expandURLPattern(pattern string, meta Metadata, name ClassName) string {
	var sb strings.Builder
	last := 0
	for _, m := range urlField.FindAllStringSubmatchIndex(pattern, -1) {
		sb.WriteString(pattern[last:m[0]])
		switch field := pattern[m[2]:m[3]]; field {
		case "baseUrl":
			sb.WriteString(meta.BaseURL)
		case "full":
			full := name.FullyQualified()
			if m[4] >= 0 {
				full = strings.ReplaceAll(full, ".", pattern[m[4]:m[5]])
			}
			sb.WriteString(full)
		}
		last = m[1]
	}
	sb.WriteString(pattern[last:])
	return sb.String()
}
