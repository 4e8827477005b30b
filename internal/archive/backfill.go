package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Backfill copies the most recent archived lesson into every missing date in
// the inclusive range, so historical date lookups never 404. Existing dates
// are left untouched. Swapped bounds are reordered. Returns the dates that
// were created.
//
// The store is optional: when nil only the dated files are written.
func Backfill(ctx context.Context, dir *Dir, store *Store, startDate, endDate string) ([]string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if start.After(end) {
		start, end = end, start
	}

	sourceDate, content, err := dir.MostRecent()
	if err != nil {
		return nil, fmt.Errorf("find source lesson: %w", err)
	}
	slog.Info("backfilling from source lesson", "source", sourceDate)

	theme, vocabCount := lessonSummary(content)

	var created []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		if dir.Exists(date) {
			slog.Debug("lesson already exists, skipping", "date", date)
			continue
		}

		if err := dir.WriteLesson(date, content); err != nil {
			return created, fmt.Errorf("backfill %s: %w", date, err)
		}
		if store != nil {
			if err := store.SaveLesson(ctx, date, theme, vocabCount, string(content)); err != nil {
				return created, fmt.Errorf("backfill %s: %w", date, err)
			}
		}
		created = append(created, date)
		slog.Info("created backfilled lesson", "date", date)
	}

	return created, nil
}

// lessonSummary pulls the theme and vocabulary count out of archived JSON for
// the store row. Unreadable content degrades to empty values rather than
// failing the backfill.
func lessonSummary(contentJSON []byte) (theme string, vocabCount int) {
	var summary struct {
		Theme           string `json:"theme"`
		VocabularyFocus []any  `json:"vocabulary_focus"`
	}
	if err := json.Unmarshal(contentJSON, &summary); err != nil {
		return "", 0
	}
	return summary.Theme, len(summary.VocabularyFocus)
}
