// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"sort"
	"time"
)

// LanguageMap holds localized display text keyed by RFC 5646 language tag.
type LanguageMap map[string]string

// Best returns the English text when present, otherwise the value of the
// lexicographically first tag. Empty maps yield "".
func (m LanguageMap) Best() string {
	if len(m) == 0 {
		return ""
	}
	for _, tag := range []string{"en", "en-US", "en-GB"} {
		if v, ok := m[tag]; ok {
			return v
		}
	}
	tags := make([]string, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return m[tags[0]]
}

// Timestamp is a lenient wrapper around time.Time for xAPI wire timestamps.
// Decoding tries RFC 3339 first and falls back to common truncated layouts;
// unparsable values decode to the zero instant instead of failing the batch.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. The zero instant encodes as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Statement is one learning-activity event. Statements are immutable input
// records: nothing downstream of decoding mutates them.
type Statement struct {
	ID        string    `json:"id,omitempty"`
	Actor     Actor     `json:"actor"`
	Verb      Verb      `json:"verb"`
	Object    Object    `json:"object"`
	Result    *Result   `json:"result,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

// Actor identifies who performed the activity.
type Actor struct {
	Name    string   `json:"name,omitempty"`
	Mbox    string   `json:"mbox,omitempty"`
	Account *Account `json:"account,omitempty"`
}

// IsZero reports whether the actor carries no identifying information at all.
func (a Actor) IsZero() bool {
	return a.Name == "" && a.Mbox == "" && a.Account == nil
}

// Account is an alternative actor identifier scoped to a home page.
type Account struct {
	HomePage string `json:"homePage,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Verb is the action type of a statement, identified by URI.
type Verb struct {
	ID      string      `json:"id"`
	Display LanguageMap `json:"display,omitempty"`
}

// Object is the activity acted upon.
type Object struct {
	ID         string     `json:"id"`
	Definition Definition `json:"definition,omitempty"`
}

// Definition describes an activity object.
type Definition struct {
	Name        LanguageMap `json:"name,omitempty"`
	Description LanguageMap `json:"description,omitempty"`
	Type        string      `json:"type,omitempty"`
}

// Result carries the optional outcome of a statement.
type Result struct {
	Score      *Score `json:"score,omitempty"`
	Success    *bool  `json:"success,omitempty"`
	Completion *bool  `json:"completion,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// Score holds the numeric outcome. Scaled is normalized to [-1, 1].
type Score struct {
	Scaled *float64 `json:"scaled,omitempty"`
	Raw    *float64 `json:"raw,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// ActivityName returns the best display name for the statement's object,
// falling back to the object id.
func (s Statement) ActivityName() string {
	if name := s.Object.Definition.Name.Best(); name != "" {
		return name
	}
	return s.Object.ID
}

// HasScore reports whether the statement carries a scaled score.
func (s Statement) HasScore() bool {
	return s.Result != nil && s.Result.Score != nil && s.Result.Score.Scaled != nil
}
