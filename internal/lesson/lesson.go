// Package lesson defines the validated daily lesson content and the schema
// checks that gate construction of a typed value from raw model output.
package lesson

import (
	"encoding/json"
	"fmt"
)

// Content is a fully validated daily lesson.
type Content struct {
	Theme             string              `json:"theme"`
	VocabularyFocus   []VocabularyItem    `json:"vocabulary_focus"`
	PracticeScenarios map[string]Scenario `json:"practice_scenarios"`
	QuizToggle        []QuizItem          `json:"quiz_toggle"`
}

// VocabularyItem is a single concept with its trilingual expressions.
type VocabularyItem struct {
	Concept     string      `json:"concept"`
	Expressions Expressions `json:"expressions"`
}

// Expressions holds the per-language renderings of a concept. Individual
// values may be empty; the key set is not enforced beyond what the model
// returns.
type Expressions struct {
	EN       string `json:"en"`
	CN       string `json:"cn"`
	BMFormal string `json:"bm_formal"`
	BMCasual string `json:"bm_casual"`
}

// Scenario is a practice scenario with its key phrases.
type Scenario struct {
	Scenario   string   `json:"scenario"`
	KeyPhrases []string `json:"key_phrases"`
}

// QuizItem is one active-recall question/answer pair.
type QuizItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FromValue validates a generic parsed JSON value and, on success, builds the
// typed Content. Validation is the single place where shape assumptions are
// asserted; everything downstream works with the typed struct.
func FromValue(v any) (*Content, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}

	// Round-trip through encoding/json to map the generic tree onto the
	// typed struct. The value was just validated, so marshaling cannot fail
	// for shape reasons.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal validated value: %w", err)
	}

	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("decode validated value: %w", err)
	}

	return &content, nil
}

// JSON serializes the content as UTF-8 JSON for archival.
func (c *Content) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
