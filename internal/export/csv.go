package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// WriteTimelineCSV writes the per-day timeline as a flat table: one row per
// active day with counts, average score, and formatted video time.
func WriteTimelineCSV(w io.Writer, timeline []model.DayBucket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "total_activities", "completions", "average_score", "video_time"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, day := range timeline {
		avg := ""
		if day.AverageScore != nil {
			avg = strconv.Itoa(*day.AverageScore)
		}
		row := []string{
			day.Date,
			strconv.Itoa(day.TotalActivities),
			strconv.Itoa(day.Completions),
			avg,
			xapi.FormatSeconds(day.VideoSeconds),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
