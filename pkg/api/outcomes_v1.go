package api

// StageOutcomeV1 is the stable wire shape for one (target percent, stage)
// result. External consumers (plotting layers, report tooling) parse this;
// internal shapes may change freely.
type StageOutcomeV1 struct {
	TargetPercent float64 `json:"target_percent"`
	Stage         int     `json:"stage"`

	Mean             float64 `json:"mean"`
	Threshold        float64 `json:"threshold"`
	FalseNegatives   int     `json:"false_negatives"`
	FalsePositives   int     `json:"false_positives"`
	FalseNegativePct float64 `json:"false_negative_pct"`
	FalsePositivePct float64 `json:"false_positive_pct"`

	// Pools are heavy; writers include them only on request.
	Desired  []float64 `json:"desired,omitempty"`
	Spurious []float64 `json:"spurious,omitempty"`

	Error string `json:"error,omitempty"`
}
