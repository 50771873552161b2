package server

// Tool describes one endpoint for clients that discover tools at runtime.
type Tool struct {
	Name        string      `json:"name"`
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters,omitempty"`
}

// Parameter describes one tool argument.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description"`
}

var catalog = []Tool{
	{
		Name:   "run_query",
		Method: "POST",
		Path:   "/tools/run_query",
		Description: "Run a SQL query. Reads may be served from a time-limited cache. " +
			"Writes (INSERT, UPDATE, DELETE, ALTER, DROP, CREATE, TRUNCATE, REPLACE) are " +
			"withheld until confirm_write is true; a successful write clears the whole cache.",
		Parameters: []Parameter{
			{Name: "query", Type: "string", Required: true, Description: "SQL statement to run"},
			{Name: "use_cache", Type: "boolean", Default: true, Description: "serve and store reads in the cache"},
			{Name: "force_refresh", Type: "boolean", Default: false, Description: "skip the cache lookup but store the fresh result"},
			{Name: "confirm_write", Type: "boolean", Default: false, Description: "allow a write to execute"},
		},
	},
	{
		Name:        "clear_cache",
		Method:      "POST",
		Path:        "/tools/clear_cache",
		Description: "Remove every cached read.",
	},
	{
		Name:        "cache_info",
		Method:      "GET",
		Path:        "/tools/cache_info",
		Description: "Report cached entries with their age and validity.",
	},
	{
		Name:   "search_sql",
		Method: "POST",
		Path:   "/tools/search_sql",
		Description: "LIKE search over one table. Vague requests return needs_clarification " +
			"instead of running; ask the person before retrying.",
		Parameters: []Parameter{
			{Name: "search_term", Type: "string", Required: true, Description: "text to look for"},
			{Name: "table", Type: "string", Description: "table to search, e.g. wp_users"},
			{Name: "columns", Type: "string", Description: "comma-separated columns; inferred for WordPress tables"},
			{Name: "use_wildcard", Type: "boolean", Default: true, Description: "wrap the term in % for partial matches"},
			{Name: "limit", Type: "integer", Default: 100, Description: "maximum rows returned"},
			{Name: "case_sensitive", Type: "boolean", Default: false, Description: "match case exactly"},
		},
	},
}
