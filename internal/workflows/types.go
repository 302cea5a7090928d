package workflows

type GeneSetDocsInput struct {
	RunID   string   `json:"run_id"`
	Species []string `json:"species"`
	Resume  bool     `json:"resume"`
	// Limit applies to each species export and to the render step as a whole.
	Limit  int  `json:"limit"`
	Render bool `json:"render"`
}

type SpeciesResult struct {
	Status   string `json:"status"`
	Exported int    `json:"exported"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
	Error    string `json:"error,omitempty"`
}

type GeneSetDocsProgress struct {
	RunID      string                   `json:"run_id"`
	Stage      string                   `json:"stage"`
	PerSpecies map[string]SpeciesResult `json:"per_species"`
	Pages      int                      `json:"pages"`
}
