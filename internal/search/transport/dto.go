package transport

// Options narrows a global search.
type Options struct {
	Limit    int
	Entities []string
	// Filters hold category, featured and status; each entity receives only
	// the keys it supports.
	Filters map[string]string
}

// Envelope is the merged result of a cross-entity search.
type Envelope struct {
	Query        string            `json:"query"`
	TotalResults int               `json:"totalResults"`
	Results      map[string]any    `json:"results"`
	Errors       map[string]string `json:"errors,omitempty"`
}

type Suggestion struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// SmartEnvelope is a global search plus suggestions derived from its hits.
type SmartEnvelope struct {
	Envelope
	Suggestions []Suggestion `json:"suggestions"`
}

type Autocomplete struct {
	ServiceCategories []string `json:"serviceCategories"`
	ProjectCategories []string `json:"projectCategories"`
	Skills            []string `json:"skills"`
	BlogCategories    []string `json:"blogCategories"`
}

type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type AnalyticsResponse struct {
	TopTerms   []TermCount `json:"topTerms"`
	TodayTotal int         `json:"todayTotal"`
}
