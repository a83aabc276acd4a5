package request

// AnalysisRequest starts a similarity analysis run against the loaded
// protein dataset.
type AnalysisRequest struct {
	Central_ID  string             `json:"central_id"`  // protein every other row is ranked against
	Weight_Mode string             `json:"weight_mode"` // preset (default), custom, adaptive
	Preset      string             `json:"preset"`      // preset name when weight_mode == preset
	Weights     map[string]float64 `json:"weights"`     // category -> weight when weight_mode == custom
	Workers     int                `json:"workers"`     // precompute workers, 0 = all CPUs
}
