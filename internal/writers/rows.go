// internal/writers/rows.go
package writers

import (
	"sort"

	"rapsim/internal/simulate"
	"rapsim/internal/sweep"
	"rapsim/pkg/api"
)

// ToAPIOutcome converts an internal stage outcome to its v1 wire shape.
// Pools are copied only when includePools is set; text output never needs
// them and JSON consumers opt in.
func ToAPIOutcome(targetPercent float64, out simulate.StageOutcome, includePools bool) api.StageOutcomeV1 {
	row := api.StageOutcomeV1{
		TargetPercent:    targetPercent,
		Stage:            out.Stage,
		Mean:             out.Mean,
		Threshold:        out.Threshold,
		FalseNegatives:   out.FalseNegatives,
		FalsePositives:   out.FalsePositives,
		FalseNegativePct: out.FalseNegativePct,
		FalsePositivePct: out.FalsePositivePct,
	}
	if includePools {
		row.Desired = append([]float64(nil), out.Desired...)
		row.Spurious = append([]float64(nil), out.Spurious...)
	}
	return row
}

// ToAPIPoint converts a sweep point, carrying its failure if the grid point
// aborted.
func ToAPIPoint(p sweep.Point, includePools bool) api.StageOutcomeV1 {
	if p.Err != nil {
		return api.StageOutcomeV1{TargetPercent: p.TargetPercent, Error: p.Err.Error()}
	}
	return ToAPIOutcome(p.TargetPercent, p.Outcome, includePools)
}

// SortRows orders rows by (target percent, stage) for deterministic output
// regardless of worker completion order.
func SortRows(rows []api.StageOutcomeV1) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TargetPercent != rows[j].TargetPercent {
			return rows[i].TargetPercent < rows[j].TargetPercent
		}
		return rows[i].Stage < rows[j].Stage
	})
}
