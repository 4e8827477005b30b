package publisher

import (
	"testing"
	"time"

	"github.com/amirulhm/trilingo/internal/lesson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent() *lesson.Content {
	return &lesson.Content{
		Theme: "Office Communication",
		VocabularyFocus: []lesson.VocabularyItem{
			{
				Concept: "schedule meeting",
				Expressions: lesson.Expressions{
					EN:       "Let's schedule a meeting",
					CN:       "我们安排个会议吧",
					BMFormal: "Mari kita jadualkan mesyuarat",
					BMCasual: "Jom schedule meeting",
				},
			},
			{
				Concept: "project deadline",
				Expressions: lesson.Expressions{
					EN:       "The deadline is Friday",
					CN:       "截止日期是星期五",
					BMFormal: "Tarikh akhir ialah hari Jumaat",
					BMCasual: "Deadline hari Jumaat",
				},
			},
		},
		PracticeScenarios: map[string]lesson.Scenario{
			"work": {
				Scenario:   "Email to boss about project delay",
				KeyPhrases: []string{"schedule meeting tomorrow", "project timeline"},
			},
		},
		QuizToggle: []lesson.QuizItem{
			{Question: "Q1?", Answer: "A1"},
			{Question: "Q2?", Answer: "A2"},
			{Question: "Q3?", Answer: "A3"},
			{Question: "Q4?", Answer: "A4"},
		},
	}
}

func blockType(b block) string {
	return b["type"].(string)
}

func TestPageTitle(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "📅 2026-08-30 - Office Communication", pageTitle(now, sampleContent()))

	empty := &lesson.Content{}
	assert.Equal(t, "📅 2026-08-30 - Daily Lesson", pageTitle(now, empty))
}

func TestPageProperties(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	content := sampleContent()

	props := pageProperties(now, content, "title")

	theme := props["Theme"].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "Work", theme["name"])

	count := props["Vocabulary Count"].(map[string]any)["number"]
	assert.Equal(t, 2, count)

	completed := props["Completed"].(map[string]any)["checkbox"]
	assert.Equal(t, false, completed)
}

func TestPageProperties_UnknownThemeDefaultsToWork(t *testing.T) {
	content := sampleContent()
	content.Theme = "Travel Vocabulary"

	props := pageProperties(time.Now(), content, "title")
	theme := props["Theme"].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "Work", theme["name"])
}

func TestPageBlocks(t *testing.T) {
	blocks := pageBlocks(sampleContent())
	require.NotEmpty(t, blocks)

	t.Run("starts with theme heading", func(t *testing.T) {
		assert.Equal(t, "heading_1", blockType(blocks[0]))
	})

	t.Run("one overview row per vocabulary item", func(t *testing.T) {
		var paragraphsAfterVocabHeading int
		seenVocabHeading := false
		for _, b := range blocks {
			if blockType(b) == "heading_2" {
				if seenVocabHeading {
					break
				}
				seenVocabHeading = true
				continue
			}
			if seenVocabHeading && blockType(b) == "paragraph" {
				paragraphsAfterVocabHeading++
			}
		}
		assert.Equal(t, 2, paragraphsAfterVocabHeading)
	})

	t.Run("all three scenario sections render", func(t *testing.T) {
		var headings []string
		for _, b := range blocks {
			if blockType(b) == "heading_2" {
				rich := b["heading_2"].(map[string]any)["rich_text"].([]any)
				text := rich[0].(map[string]any)["text"].(map[string]any)["content"].(string)
				headings = append(headings, text)
			}
		}
		assert.Contains(t, headings, "🏢 Work Scenario")
		assert.Contains(t, headings, "☕ Life Scenario")
		assert.Contains(t, headings, "💻 Tech Scenario")
	})

	t.Run("quiz toggles capped per scenario", func(t *testing.T) {
		var toggles int
		for _, b := range blocks {
			if blockType(b) == "toggle" {
				toggles++
			}
		}
		// 3 scenarios x 3 questions, fourth question dropped.
		assert.Equal(t, 9, toggles)
	})
}

func TestPageBlocks_MissingScenariosTolerated(t *testing.T) {
	content := sampleContent()
	content.PracticeScenarios = nil

	assert.NotPanics(t, func() {
		blocks := pageBlocks(content)
		assert.NotEmpty(t, blocks)
	})
}

func TestRelevantVocabulary(t *testing.T) {
	items := sampleContent().VocabularyFocus

	t.Run("matches by concept overlap", func(t *testing.T) {
		got := relevantVocabulary(items, []string{"please schedule meeting with the team"})
		require.Len(t, got, 1)
		assert.Equal(t, "schedule meeting", got[0].Concept)
	})

	t.Run("falls back to leading items", func(t *testing.T) {
		got := relevantVocabulary(items, []string{"nothing in common"})
		assert.Len(t, got, 2)
	})

	t.Run("fallback capped at three", func(t *testing.T) {
		many := append(items, items...)
		got := relevantVocabulary(many, []string{"zzz"})
		assert.Len(t, got, 3)
	})
}
