// Package export serializes dashboard summaries to interchange formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/edmetric/lrslens/internal/model"
)

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, summary model.DashboardSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// ReadJSON parses a summary previously written by WriteJSON.
func ReadJSON(r io.Reader) (model.DashboardSummary, error) {
	var summary model.DashboardSummary
	if err := json.NewDecoder(r).Decode(&summary); err != nil {
		return model.DashboardSummary{}, fmt.Errorf("failed to decode summary: %w", err)
	}
	return summary, nil
}
