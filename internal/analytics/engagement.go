package analytics

import (
	"sort"
	"time"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// sessionGap is the largest pause that keeps two statements in one session.
// The boundary is inclusive: a gap of exactly one hour does not split.
const sessionGap = time.Hour

// Engagement derives study sessions, learning streaks, and video time from
// the statement set. now anchors the current-streak check and is never read
// from the ambient clock.
func (e *Engine) Engagement(stmts []model.Statement, now time.Time) model.EngagementSummary {
	summary := model.EngagementSummary{}

	timestamps := make([]time.Time, 0, len(stmts))
	dayset := make(map[string]struct{})
	for _, st := range stmts {
		if e.Vocab.IsVideo(st.Object.Definition.Type) {
			summary.VideoInteractions++
			if st.Result != nil && st.Result.Duration != "" {
				summary.VideoSeconds += xapi.ParseDuration(st.Result.Duration)
			}
		}
		if st.Timestamp.IsZero() {
			continue
		}
		timestamps = append(timestamps, st.Timestamp.Time)
		dayset[st.Timestamp.UTC().Format(dayLayout)] = struct{}{}
	}
	if len(timestamps) == 0 {
		return summary
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	summary.Sessions = sessions(timestamps)
	totalDur := 0
	for _, s := range summary.Sessions {
		totalDur += s.DurationSeconds
		if s.DurationSeconds > summary.LongestSessionSeconds {
			summary.LongestSessionSeconds = s.DurationSeconds
		}
	}
	summary.AverageSessionSeconds = roundPct(float64(totalDur) / float64(len(summary.Sessions)))

	days := make([]string, 0, len(dayset))
	for d := range dayset {
		days = append(days, d)
	}
	sort.Strings(days)
	summary.ActiveDays = len(days)
	summary.LongestStreak = longestStreak(days)
	summary.CurrentStreak = currentStreak(days, timestamps[len(timestamps)-1], now)
	return summary
}

// sessions folds ascending timestamps into maximal runs with no gap over
// sessionGap. A lone statement yields a one-activity, zero-duration session.
func sessions(ordered []time.Time) []model.Session {
	var out []model.Session
	cur := model.Session{Start: ordered[0], End: ordered[0], Activities: 1}
	for _, ts := range ordered[1:] {
		if ts.Sub(cur.End) <= sessionGap {
			cur.End = ts
			cur.Activities++
			continue
		}
		cur.DurationSeconds = int(cur.End.Sub(cur.Start).Seconds())
		out = append(out, cur)
		cur = model.Session{Start: ts, End: ts, Activities: 1}
	}
	cur.DurationSeconds = int(cur.End.Sub(cur.Start).Seconds())
	return append(out, cur)
}

// longestStreak walks ascending distinct day keys counting the longest run
// of consecutive calendar days.
func longestStreak(days []string) int {
	longest := 0
	run := 0
	var prev time.Time
	for _, key := range days {
		day, err := time.Parse(dayLayout, key)
		if err != nil {
			continue
		}
		if run > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	return longest
}

// currentStreak counts backward from the last active day. The streak is
// alive only when the last activity happened on now's calendar day or within
// the preceding 24 hours; otherwise it is 0.
func currentStreak(days []string, lastActivity, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := now.UTC().Format(dayLayout)
	if days[len(days)-1] != today && now.Sub(lastActivity) > 24*time.Hour {
		return 0
	}
	last, err := time.Parse(dayLayout, days[len(days)-1])
	if err != nil {
		return 0
	}
	streak := 1
	prev := last
	for i := len(days) - 2; i >= 0; i-- {
		day, err := time.Parse(dayLayout, days[i])
		if err != nil {
			break
		}
		if prev.Sub(day) != 24*time.Hour {
			break
		}
		streak++
		prev = day
	}
	return streak
}
