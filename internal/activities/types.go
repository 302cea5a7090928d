package activities

type ExportSpeciesInput struct {
	RunID   string `json:"run_id"`
	Species string `json:"species"`
	Resume  bool   `json:"resume"`
	Limit   int    `json:"limit"`
}

type ExportSpeciesOutput struct {
	Species     string `json:"species"`
	Source      string `json:"source"`
	Dir         string `json:"dir"`
	Exported    int    `json:"exported"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
	Limited     bool   `json:"limited"`
	ManifestKey string `json:"manifest_key"`
	DurationMS  int64  `json:"duration_ms"`
}

type RenderPagesInput struct {
	Species []string `json:"species"`
	Resume  bool     `json:"resume"`
	Limit   int      `json:"limit"`
}

type RenderPagesOutput struct {
	Generated  int            `json:"generated"`
	Skipped    int            `json:"skipped"`
	Failed     int            `json:"failed"`
	PerSpecies map[string]int `json:"per_species"`
}

type WriteRunSummaryInput struct {
	RunID   string         `json:"run_id"`
	Summary map[string]any `json:"summary"`
}

type WriteRunSummaryOutput struct {
	Key string `json:"key"`
}
