// Package xapi implements xAPI statement helpers: the provider vocabulary,
// the compact duration codec, validation, sanitizing, and construction.
package xapi

import (
	"strings"

	"github.com/edmetric/lrslens/internal/model"
)

// Standard ADL verb URIs.
const (
	VerbCompleted   = "http://adlnet.gov/expapi/verbs/completed"
	VerbPassed      = "http://adlnet.gov/expapi/verbs/passed"
	VerbFailed      = "http://adlnet.gov/expapi/verbs/failed"
	VerbAnswered    = "http://adlnet.gov/expapi/verbs/answered"
	VerbExperienced = "http://adlnet.gov/expapi/verbs/experienced"
	VerbScored      = "http://adlnet.gov/expapi/verbs/scored"
	VerbAttempted   = "http://adlnet.gov/expapi/verbs/attempted"
	VerbPlayed      = "https://w3id.org/xapi/video/verbs/played"
)

// Standard activity-type URIs.
const (
	TypeModule     = "http://adlnet.gov/expapi/activities/module"
	TypeCourse     = "http://adlnet.gov/expapi/activities/course"
	TypeAssessment = "http://adlnet.gov/expapi/activities/assessment"
	TypeQuestion   = "http://adlnet.gov/expapi/activities/question"
	TypeAssignment = "http://id.tincanapi.com/activitytype/school-assignment"
	TypeVideo      = "https://w3id.org/xapi/video/activity-type/video"
	TypeMedia      = "http://adlnet.gov/expapi/activities/media"
)

// Vocabulary lists the verb and activity-type URIs the engine recognizes for
// one content provider. The engine never hardcodes provider URIs; a
// Vocabulary value is injected instead.
type Vocabulary struct {
	completionVerbs map[string]struct{}
	moduleTypes     map[string]struct{}
	quizTypes       map[string]struct{}
	assignmentTypes map[string]struct{}
	videoTypes      map[string]struct{}
	verbLabels      map[string]string
	typeLabels      map[string]string
}

// Override extends a vocabulary with provider-specific URIs.
type Override struct {
	CompletionVerbs []string
	ModuleTypes     []string
	QuizTypes       []string
	AssignmentTypes []string
	VideoTypes      []string
}

// DefaultVocabulary returns a vocabulary covering the ADL and w3id video
// profiles.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		completionVerbs: toSet(VerbCompleted),
		moduleTypes:     toSet(TypeModule),
		quizTypes:       toSet(TypeAssessment, TypeQuestion),
		assignmentTypes: toSet(TypeAssignment),
		videoTypes:      toSet(TypeVideo, TypeMedia),
		verbLabels: map[string]string{
			VerbCompleted:   "completed",
			VerbPassed:      "passed",
			VerbFailed:      "failed",
			VerbAnswered:    "answered",
			VerbExperienced: "experienced",
			VerbScored:      "scored",
			VerbAttempted:   "attempted",
			VerbPlayed:      "played",
		},
		typeLabels: map[string]string{
			TypeModule:     "module",
			TypeCourse:     "course",
			TypeAssessment: "quiz",
			TypeQuestion:   "quiz",
			TypeAssignment: "assignment",
			TypeVideo:      "video",
			TypeMedia:      "video",
		},
	}
}

// Apply returns a copy of the vocabulary extended with the override URIs.
func (v Vocabulary) Apply(o Override) Vocabulary {
	out := v.clone()
	addAll(out.completionVerbs, o.CompletionVerbs)
	addAll(out.moduleTypes, o.ModuleTypes)
	addAll(out.quizTypes, o.QuizTypes)
	addAll(out.assignmentTypes, o.AssignmentTypes)
	addAll(out.videoTypes, o.VideoTypes)
	return out
}

// IsCompletion reports whether the verb URI marks an activity as completed.
func (v Vocabulary) IsCompletion(verbID string) bool {
	_, ok := v.completionVerbs[verbID]
	return ok
}

// IsModule reports whether the activity-type URI is a module.
func (v Vocabulary) IsModule(typeURI string) bool {
	_, ok := v.moduleTypes[typeURI]
	return ok
}

// IsQuiz reports whether the activity-type URI is a quiz or question.
func (v Vocabulary) IsQuiz(typeURI string) bool {
	_, ok := v.quizTypes[typeURI]
	return ok
}

// IsAssignment reports whether the activity-type URI is an assignment.
func (v Vocabulary) IsAssignment(typeURI string) bool {
	_, ok := v.assignmentTypes[typeURI]
	return ok
}

// IsVideo reports whether the activity-type URI is a video.
func (v Vocabulary) IsVideo(typeURI string) bool {
	_, ok := v.videoTypes[typeURI]
	return ok
}

// IsScorable reports whether the activity-type URI contributes to score
// aggregation (quizzes and assignments).
func (v Vocabulary) IsScorable(typeURI string) bool {
	return v.IsQuiz(typeURI) || v.IsAssignment(typeURI)
}

// VerbLabel returns a short human label for a verb: its display text when
// present, a known label, or the humanized URI tail.
func (v Vocabulary) VerbLabel(verb model.Verb) string {
	if label := verb.Display.Best(); label != "" {
		return label
	}
	if label, ok := v.verbLabels[verb.ID]; ok {
		return label
	}
	return uriTail(verb.ID)
}

// TypeLabel returns a short human label for an activity-type URI. Unknown
// and empty types label as "activity".
func (v Vocabulary) TypeLabel(typeURI string) string {
	if label, ok := v.typeLabels[typeURI]; ok {
		return label
	}
	if typeURI == "" {
		return "activity"
	}
	if tail := uriTail(typeURI); tail != "" {
		return tail
	}
	return "activity"
}

func (v Vocabulary) clone() Vocabulary {
	return Vocabulary{
		completionVerbs: cloneSet(v.completionVerbs),
		moduleTypes:     cloneSet(v.moduleTypes),
		quizTypes:       cloneSet(v.quizTypes),
		assignmentTypes: cloneSet(v.assignmentTypes),
		videoTypes:      cloneSet(v.videoTypes),
		verbLabels:      cloneMap(v.verbLabels),
		typeLabels:      cloneMap(v.typeLabels),
	}
}

func uriTail(uri string) string {
	trimmed := strings.TrimRight(uri, "/#")
	idx := strings.LastIndexAny(trimmed, "/#")
	if idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.ReplaceAll(trimmed, "-", " ")
}

func toSet(uris ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(uris))
	for _, uri := range uris {
		set[uri] = struct{}{}
	}
	return set
}

func addAll(set map[string]struct{}, uris []string) {
	for _, uri := range uris {
		uri = strings.TrimSpace(uri)
		if uri == "" {
			continue
		}
		set[uri] = struct{}{}
	}
}

func cloneSet(src map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(src))
	for k := range src {
		out[k] = struct{}{}
	}
	return out
}

func cloneMap(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, val := range src {
		out[k] = val
	}
	return out
}
