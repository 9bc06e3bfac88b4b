package market

// Article is a single news item returned by the data collector.
type Article struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Analysis is the outcome of an analyzer run. A degraded analysis is one
// produced by the analyzer's failure-recovery path instead of a genuine
// generation; it still carries a readable markdown report.
type Analysis struct {
	Report   string
	Degraded bool
	Cause    string
}

// Report is the response model for a completed sector analysis.
type Report struct {
	Sector       string `json:"sector"`
	Report       string `json:"report"`
	Timestamp    string `json:"timestamp"`
	SourcesCount int    `json:"sources_count"`
	Degraded     bool   `json:"degraded,omitempty"`
}
