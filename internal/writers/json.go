// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"rapsim/pkg/api"
)

func init() {
	RegisterOutcome("json", WriteJSON)
	RegisterOutcome("jsonl", WriteJSONL)
}

// WriteJSON emits all rows as one indented JSON array (v1).
func WriteJSON(w io.Writer, rows []api.StageOutcomeV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteJSONL emits each row as one JSON line (v1), friendly to streaming
// consumers.
func WriteJSONL(w io.Writer, rows []api.StageOutcomeV1) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
