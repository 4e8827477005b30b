package publisher

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirulhm/trilingo/internal/lesson"
)

// quizPerScenario caps how many toggle questions each scenario section shows.
const quizPerScenario = 3

// block is a Notion block object. The block schema is deeply polymorphic, so
// blocks are built as generic maps and serialized as-is.
type block = map[string]any

// scenarioOrder fixes the section order on the page. Scenarios missing from
// the content render as header-only sections rather than failing.
var scenarioOrder = []string{"work", "life", "tech"}

var scenarioEmojis = map[string]string{
	"work": "🏢",
	"life": "☕",
	"tech": "💻",
}

var scenarioTitles = map[string]string{
	"work": "Work Scenario",
	"life": "Life Scenario",
	"tech": "Tech Scenario",
}

// themeSelects maps descriptive theme labels back to the workspace select
// options.
var themeSelects = map[string]string{
	"Office Communication":     "Work",
	"Daily Life":               "Life",
	"Technology & Development": "Tech",
}

// pageTitle builds the dated page title.
func pageTitle(now time.Time, content *lesson.Content) string {
	theme := content.Theme
	if theme == "" {
		theme = "Daily Lesson"
	}
	return fmt.Sprintf("📅 %s - %s", now.Format("2006-01-02"), theme)
}

// pageProperties builds the database properties for the lesson page.
func pageProperties(now time.Time, content *lesson.Content, title string) map[string]any {
	selectName, ok := themeSelects[content.Theme]
	if !ok {
		selectName = "Work"
	}

	return map[string]any{
		"Title": map[string]any{
			"title": []any{textRun(title)},
		},
		"Theme": map[string]any{
			"select": map[string]any{"name": selectName},
		},
		"Date": map[string]any{
			"date": map[string]any{"start": now.Format(time.RFC3339)},
		},
		"Vocabulary Count": map[string]any{
			"number": len(content.VocabularyFocus),
		},
		"Completed": map[string]any{
			"checkbox": false,
		},
	}
}

// pageBlocks builds the complete page body.
func pageBlocks(content *lesson.Content) []block {
	blocks := themeIntro(content)
	blocks = append(blocks, vocabularyOverview(content)...)

	for _, key := range scenarioOrder {
		blocks = append(blocks, scenarioSection(content, key)...)
	}

	return blocks
}

func themeIntro(content *lesson.Content) []block {
	theme := content.Theme
	if theme == "" {
		theme = "Daily Lesson"
	}

	intro := fmt.Sprintf("Today's lesson focuses on %d practical expressions for %s. ",
		len(content.VocabularyFocus), strings.ToLower(theme))

	return []block{
		heading(1, "🎯 "+theme),
		paragraph(
			textRun(intro),
			annotatedRun("Practice switching between English, Chinese, and Malay!", map[string]any{"italic": true}),
		),
	}
}

func vocabularyOverview(content *lesson.Content) []block {
	blocks := []block{heading(2, "🎯 Key Vocabulary")}

	for _, item := range content.VocabularyFocus {
		blocks = append(blocks, paragraph(
			annotatedRun(item.Concept, map[string]any{"bold": true}),
			textRun(" | "),
			annotatedRun(item.Expressions.EN, map[string]any{"code": true}),
			textRun(" | "),
			annotatedRun(item.Expressions.CN, map[string]any{"code": true}),
			textRun(" | "),
			annotatedRun(item.Expressions.BMFormal, map[string]any{"code": true}),
			textRun(" | "),
			annotatedRun(item.Expressions.BMCasual, map[string]any{"code": true}),
		))
	}

	return blocks
}

func scenarioSection(content *lesson.Content, key string) []block {
	blocks := []block{
		heading(2, fmt.Sprintf("%s %s", scenarioEmojis[key], scenarioTitles[key])),
	}

	scenario, ok := content.PracticeScenarios[key]
	if ok && scenario.Scenario != "" {
		blocks = append(blocks, paragraph(textRun("💼 "+scenario.Scenario)))
	}

	if ok && len(scenario.KeyPhrases) > 0 {
		blocks = append(blocks, paragraph(
			annotatedRun("🔑 Key Phrases:", map[string]any{"bold": true}),
		))

		for _, item := range relevantVocabulary(content.VocabularyFocus, scenario.KeyPhrases) {
			expr := item.Expressions

			if expr.BMFormal != "" {
				blocks = append(blocks, quote("blue",
					textRun("🇲🇾 Formal: "+expr.BMFormal),
					textRun(" | 🇬🇧 "+expr.EN),
					textRun(" | 🇨🇳 "+expr.CN),
				))
			}

			if expr.BMCasual != "" {
				blocks = append(blocks, paragraphColored("orange",
					textRun("🇲🇾 Casual: "+expr.BMCasual),
					textRun(" | 🇬🇧 "+expr.EN),
					textRun(" | 🇨🇳 "+expr.CN),
				))
			}
		}
	}

	blocks = append(blocks, scenarioQuiz(content)...)

	return blocks
}

// relevantVocabulary picks vocabulary items whose concept overlaps the
// scenario's key phrases, falling back to the first few items when nothing
// matches.
func relevantVocabulary(items []lesson.VocabularyItem, keyPhrases []string) []lesson.VocabularyItem {
	var relevant []lesson.VocabularyItem

	for _, item := range items {
		concept := strings.ToLower(item.Concept)
		for _, phrase := range keyPhrases {
			p := strings.ToLower(phrase)
			if strings.Contains(p, concept) || strings.Contains(concept, p) {
				relevant = append(relevant, item)
				break
			}
		}
	}

	if len(relevant) == 0 {
		if len(items) > 3 {
			return items[:3]
		}
		return items
	}
	return relevant
}

func scenarioQuiz(content *lesson.Content) []block {
	if len(content.QuizToggle) == 0 {
		return nil
	}

	blocks := []block{heading(3, "❓ Practice Quiz")}

	items := content.QuizToggle
	if len(items) > quizPerScenario {
		items = items[:quizPerScenario]
	}

	for i, q := range items {
		blocks = append(blocks, block{
			"object": "block",
			"type":   "toggle",
			"toggle": map[string]any{
				"rich_text": []any{textRun(fmt.Sprintf("Q%d: %s", i+1, q.Question))},
				"children": []any{
					paragraph(annotatedRun("🇲🇾 "+q.Answer, map[string]any{"bold": true})),
				},
			},
		})
	}

	return blocks
}

// --- block constructors ---

func textRun(content string) map[string]any {
	return map[string]any{"text": map[string]any{"content": content}}
}

func annotatedRun(content string, annotations map[string]any) map[string]any {
	return map[string]any{
		"text":        map[string]any{"content": content},
		"annotations": annotations,
	}
}

func heading(level int, text string) block {
	key := fmt.Sprintf("heading_%d", level)
	return block{
		"object": "block",
		"type":   key,
		key: map[string]any{
			"rich_text": []any{textRun(text)},
		},
	}
}

func paragraph(runs ...map[string]any) block {
	richText := make([]any, len(runs))
	for i, r := range runs {
		richText[i] = r
	}
	return block{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": richText,
		},
	}
}

func paragraphColored(color string, runs ...map[string]any) block {
	b := paragraph(runs...)
	b["paragraph"].(map[string]any)["color"] = color
	return b
}

func quote(color string, runs ...map[string]any) block {
	richText := make([]any, len(runs))
	for i, r := range runs {
		richText[i] = r
	}
	return block{
		"object": "block",
		"type":   "quote",
		"quote": map[string]any{
			"rich_text": richText,
			"color":     color,
		},
	}
}
