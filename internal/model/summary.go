package model

import "time"

// Trend classifies the direction of recent scores.
type Trend string

// Trend values.
const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Priority ranks insights for display.
type Priority string

// Priority values, highest first.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns a sortable weight; higher means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Severity grades anomalies.
type Severity string

// Severity values.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RiskLevel is the roll-up of all detected anomalies.
type RiskLevel string

// RiskLevel values.
const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
	RiskNone   RiskLevel = "none"
)

// ModuleCompletion records one completed module, newest first in listings.
type ModuleCompletion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompletedAt time.Time `json:"completed_at"`
	Actor       string    `json:"actor,omitempty"`
}

// ProgressSummary is the derived completion progress over a statement set.
type ProgressSummary struct {
	Completed         int                `json:"completed"`
	Total             int                `json:"total"`
	Percentage        int                `json:"percentage"`
	Remaining         int                `json:"remaining"`
	ModuleCompletions []ModuleCompletion `json:"module_completions,omitempty"`
	LastActivity      *time.Time         `json:"last_activity,omitempty"`
}

// ScoreRecord is the canonical score entry for one activity: the latest
// attempt annotated with aggregate attempt stats.
type ScoreRecord struct {
	ActivityID   string    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	Score        int       `json:"score"`
	BestScore    int       `json:"best_score"`
	Attempts     int       `json:"attempts"`
	Success      bool      `json:"success"`
	Timestamp    time.Time `json:"timestamp"`
	FirstAttempt time.Time `json:"first_attempt"`
}

// ScoreSummary aggregates score-bearing statements per activity.
type ScoreSummary struct {
	Scores          []ScoreRecord  `json:"scores,omitempty"`
	Average         int            `json:"average"`
	Highest         int            `json:"highest"`
	Lowest          int            `json:"lowest"`
	TotalAttempts   int            `json:"total_attempts"`
	PerfectAttempts int            `json:"perfect_attempts"`
	PassRate        int            `json:"pass_rate"`
	Trend           Trend          `json:"trend"`
	Distribution    map[string]int `json:"distribution"`
}

// ActivityView is a single statement projected for timeline display.
type ActivityView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Verb      string    `json:"verb"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Success   *bool     `json:"success,omitempty"`
	Score     *int      `json:"score,omitempty"`
}

// DayBucket accumulates one UTC calendar day of activity. Days with no
// statements get no bucket.
type DayBucket struct {
	Date            string         `json:"date"`
	Activities      []ActivityView `json:"activities"`
	TotalActivities int            `json:"total_activities"`
	Completions     int            `json:"completions"`
	Scores          []int          `json:"scores,omitempty"`
	VideoSeconds    int            `json:"video_seconds"`
	AverageScore    *int           `json:"average_score,omitempty"`
	TypeCounts      map[string]int `json:"type_counts,omitempty"`
}

// Session is a maximal run of statements with no gap exceeding one hour.
type Session struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Activities      int       `json:"activities"`
	DurationSeconds int       `json:"duration_seconds"`
}

// EngagementSummary holds session, streak, and video-time metrics.
type EngagementSummary struct {
	VideoSeconds          int       `json:"video_seconds"`
	VideoInteractions     int       `json:"video_interactions"`
	Sessions              []Session `json:"sessions,omitempty"`
	AverageSessionSeconds int       `json:"average_session_seconds"`
	LongestSessionSeconds int       `json:"longest_session_seconds"`
	CurrentStreak         int       `json:"current_streak"`
	LongestStreak         int       `json:"longest_streak"`
	ActiveDays            int       `json:"active_days"`
}

// Insight is one generated, human-readable observation.
type Insight struct {
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// Overview carries freshness and quality metadata for a dashboard pass.
type Overview struct {
	LastUpdated       time.Time `json:"last_updated"`
	TotalStatements   int       `json:"total_statements"`
	SkippedStatements int       `json:"skipped_statements"`
	HasMore           bool      `json:"has_more"`
	DataQuality       int       `json:"data_quality"`
	Completeness      int       `json:"completeness"`
	Freshness         int       `json:"freshness"`
}

// ChartSeries is a rendering-ready label/value projection.
type ChartSeries struct {
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// ChartData bundles the chart projections derived from a summary.
type ChartData struct {
	DailyActivity     ChartSeries `json:"daily_activity"`
	ScoreTrend        ChartSeries `json:"score_trend"`
	GradeDistribution ChartSeries `json:"grade_distribution"`
}

// DashboardSummary composes every derived metric for one aggregation pass.
type DashboardSummary struct {
	Overview   Overview          `json:"overview"`
	Progress   ProgressSummary   `json:"progress"`
	Scores     ScoreSummary      `json:"scores"`
	Timeline   []DayBucket       `json:"timeline,omitempty"`
	Engagement EngagementSummary `json:"engagement"`
	Insights   []Insight         `json:"insights,omitempty"`
	Charts     ChartData         `json:"charts"`
}

// Anomaly is one statistically suspicious pattern found in a summary.
type Anomaly struct {
	Kind     string   `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// AnomalyReport is the result of scanning a summary for anomalies.
type AnomalyReport struct {
	Anomalies []Anomaly `json:"anomalies,omitempty"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// StatementBundle is the raw input to a dashboard pass, split by the source
// collections an event-log client typically fetches separately.
type StatementBundle struct {
	Completions []Statement `json:"completions,omitempty"`
	Quizzes     []Statement `json:"quizzes,omitempty"`
	Assignments []Statement `json:"assignments,omitempty"`
	Videos      []Statement `json:"videos,omitempty"`
	HasMore     bool        `json:"has_more,omitempty"`
}

// Pool returns every statement in the bundle as one slice.
func (b StatementBundle) Pool() []Statement {
	pool := make([]Statement, 0, len(b.Completions)+len(b.Quizzes)+len(b.Assignments)+len(b.Videos))
	pool = append(pool, b.Completions...)
	pool = append(pool, b.Quizzes...)
	pool = append(pool, b.Assignments...)
	pool = append(pool, b.Videos...)
	return pool
}

// ReportConfig defines filters for loading a statement snapshot.
type ReportConfig struct {
	Actor string
	Since *time.Time
	Last  int
}
