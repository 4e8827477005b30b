package lesson

import "fmt"

// Reason classifies why a payload failed validation.
type Reason string

const (
	ReasonNotObject       Reason = "not_object"
	ReasonMissingKey      Reason = "missing_key"
	ReasonVocabNotList    Reason = "vocabulary_not_list"
	ReasonVocabEmpty      Reason = "vocabulary_empty"
	ReasonVocabBadItem    Reason = "vocabulary_bad_item"
	ReasonQuizNotList     Reason = "quiz_not_list"
	ReasonQuizBadItem     Reason = "quiz_bad_item"
)

// ValidationError reports the first schema rule a payload violated.
type ValidationError struct {
	Reason Reason
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid lesson content: %s (%s)", e.Reason, e.Field)
	}
	return fmt.Sprintf("invalid lesson content: %s", e.Reason)
}

var requiredKeys = []string{"theme", "vocabulary_focus", "practice_scenarios", "quiz_toggle"}

// Validate checks a generic parsed JSON value against the lesson schema.
// Rules are checked in order and the first violation is returned. A missing
// top-level key invalidates the whole object; there is no partial accept.
//
// practice_scenarios only has to exist. Its internal shape is left to the
// renderer, which treats missing scenario keys as empty sections.
func Validate(v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return &ValidationError{Reason: ReasonNotObject}
	}

	for _, key := range requiredKeys {
		if _, ok := obj[key]; !ok {
			return &ValidationError{Reason: ReasonMissingKey, Field: key}
		}
	}

	vocab, ok := obj["vocabulary_focus"].([]any)
	if !ok {
		return &ValidationError{Reason: ReasonVocabNotList, Field: "vocabulary_focus"}
	}
	if len(vocab) == 0 {
		return &ValidationError{Reason: ReasonVocabEmpty, Field: "vocabulary_focus"}
	}
	for _, item := range vocab {
		entry, ok := item.(map[string]any)
		if !ok {
			return &ValidationError{Reason: ReasonVocabBadItem, Field: "vocabulary_focus"}
		}
		if _, ok := entry["concept"]; !ok {
			return &ValidationError{Reason: ReasonVocabBadItem, Field: "concept"}
		}
		if _, ok := entry["expressions"]; !ok {
			return &ValidationError{Reason: ReasonVocabBadItem, Field: "expressions"}
		}
	}

	quiz, ok := obj["quiz_toggle"].([]any)
	if !ok {
		return &ValidationError{Reason: ReasonQuizNotList, Field: "quiz_toggle"}
	}
	for _, item := range quiz {
		entry, ok := item.(map[string]any)
		if !ok {
			return &ValidationError{Reason: ReasonQuizBadItem, Field: "quiz_toggle"}
		}
		if _, ok := entry["question"]; !ok {
			return &ValidationError{Reason: ReasonQuizBadItem, Field: "question"}
		}
		if _, ok := entry["answer"]; !ok {
			return &ValidationError{Reason: ReasonQuizBadItem, Field: "answer"}
		}
	}

	return nil
}
