package types

// NoirParam is a single parameter as reported by OWASP Noir. Attributes
// beyond name and type vary between Noir versions and are kept opaque.
type NoirParam struct {
	Name  string                 `json:"name"`
	Type  string                 `json:"type"`
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// NoirEndpoint is one endpoint record discovered by static analysis.
type NoirEndpoint struct {
	Method  string      `json:"method"`
	URL     string      `json:"url"`
	Params  []NoirParam `json:"params,omitempty"`
	Sources []string    `json:"sources,omitempty"`
}

// RouteFile is a snippet of a source file that looks like routing or
// controller code. Content is truncated by the scanner before it gets here.
type RouteFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RequestBatch is one size-bounded unit of work for the synthesis service.
// Its JSON encoding is exactly the payload sent to the model, so the field
// order here defines the canonical serialization the batcher measures.
type RequestBatch struct {
	BaseURL   string         `json:"baseUrl"`
	Endpoints []NoirEndpoint `json:"noirEndpoints"`
	Files     []RouteFile    `json:"routeFiles"`
}

// ApiParam describes a path, query or header parameter of a synthesized
// endpoint.
type ApiParam struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ApiResponse describes one response of a synthesized endpoint.
type ApiResponse struct {
	Status      int                    `json:"status"`
	ContentType string                 `json:"contentType"`
	Schema      map[string]interface{} `json:"schema"`
	Example     interface{}            `json:"example,omitempty"`
}

// ApiEndpoint is a fully synthesized endpoint. Two endpoints are considered
// the same when their uppercased method and path match.
type ApiEndpoint struct {
	Method      string                 `json:"method"`
	Path        string                 `json:"path"`
	Summary     string                 `json:"summary"`
	Description string                 `json:"description"`
	PathParams  []ApiParam             `json:"pathParams"`
	QueryParams []ApiParam             `json:"queryParams"`
	Headers     []ApiParam             `json:"headers"`
	RequestBody map[string]interface{} `json:"requestBody,omitempty"`
	Responses   []ApiResponse          `json:"responses"`
	Source      map[string]interface{} `json:"source"`
}

// ApiCollection is the pipeline's final artifact: one consistent API
// description with unique endpoint identities.
type ApiCollection struct {
	Title     string        `json:"title"`
	Version   string        `json:"version"`
	BaseURL   string        `json:"baseUrl"`
	Endpoints []ApiEndpoint `json:"endpoints"`
}
