package build

import "time"

// Manifest records what the last successful build produced.
type Manifest struct {
	BuildID    string       `json:"build_id"`
	FinishedAt time.Time    `json:"finished_at"`
	BaseURL    string       `json:"base_url"`
	Pages      []PageRecord `json:"pages"`
	// Navigation lists page URLs in navigation order.
	Navigation []string `json:"navigation"`
}

type PageRecord struct {
	Source      string `json:"source"`
	Collection  string `json:"collection"`
	Slug        string `json:"slug"`
	OutPath     string `json:"out_path"`
	URL         string `json:"url"`
	Template    string `json:"template"`
	ContentHash string `json:"content_hash"`
	RenderHash  string `json:"render_hash"`
}

// BuildRecord is the summary kept next to the page records.
type BuildRecord struct {
	BuildID    string    `json:"build_id"`
	FinishedAt time.Time `json:"finished_at"`
	BaseURL    string    `json:"base_url"`
	PageCount  int       `json:"page_count"`
}
