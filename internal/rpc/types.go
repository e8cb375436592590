package rpc

// SearchRequest is the request body for POST /search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the response body for POST /search. Names holds
// fully-qualified class names; empty means nothing matched.
type SearchResponse struct {
	Names []string `json:"names"`
}

// ClassRequest is the request body for POST /class. Name must be an
// exact fully-qualified class name.
type ClassRequest struct {
	Name   string `json:"name"`
	Frames bool   `json:"frames,omitempty"`
}

// ClassResponse is the response body for POST /class.
type ClassResponse struct {
	Name        string   `json:"name"`
	Library     string   `json:"library,omitempty"`
	Version     string   `json:"version,omitempty"`
	URL         string   `json:"url,omitempty"`
	Modifiers   string   `json:"modifiers,omitempty"`
	Extends     string   `json:"extends,omitempty"`
	Since       string   `json:"since,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	Description string   `json:"description,omitempty"`
	Methods     []Method `json:"methods,omitempty"`
}

type Method struct {
	Name        string   `json:"name"`
	Modifiers   string   `json:"modifiers,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	Parameters  []string `json:"parameters,omitempty"`
	Description string   `json:"description,omitempty"`
}

// LibrariesResponse is the response body for GET /libraries.
type LibrariesResponse struct {
	Libraries []LibraryStatus `json:"libraries"`
}

type LibraryStatus struct {
	Name       string `json:"name"`
	Version    string `json:"version,omitempty"`
	ProjectURL string `json:"project_url,omitempty"`
	Path       string `json:"path"`
	Classes    int    `json:"classes"`
}

// ReloadResponse is the response body for POST /reload, reporting the
// library contents after the rescan.
type ReloadResponse struct {
	Archives int `json:"archives"`
	Classes  int `json:"classes"`
}
