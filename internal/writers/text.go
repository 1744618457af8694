// internal/writers/text.go
package writers

import (
	"fmt"
	"io"

	"rapsim/pkg/api"
)

const textHeader = "target_percent\tstage\tmean\tthreshold\tfalse_neg\tfalse_pos\tfalse_neg_pct\tfalse_pos_pct"

func init() {
	RegisterOutcome("text", func(w io.Writer, rows []api.StageOutcomeV1) error {
		return WriteText(w, rows, true)
	})
}

// WriteText prints one TSV line per stage outcome. Failed grid points render
// their error in place of metrics so a sweep's gaps stay visible.
func WriteText(w io.Writer, rows []api.StageOutcomeV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, textHeader); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "%g\t-\terror: %s\n", r.TargetPercent, r.Error); err != nil {
				return err
			}
			continue
		}
		_, err := fmt.Fprintf(w, "%g\t%d\t%.4f\t%.4f\t%d\t%d\t%.2f\t%.2f\n",
			r.TargetPercent, r.Stage, r.Mean, r.Threshold,
			r.FalseNegatives, r.FalsePositives,
			r.FalseNegativePct, r.FalsePositivePct,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
