package generate

// lessonPrompt is the generation prompt template. Placeholders: theme,
// vocabulary count.
const lessonPrompt = `You are a Malaysian language tutor specializing in trilingual education.

Generate a daily vocabulary lesson with the following requirements:
1. Theme: %s
2. %d vocabulary items focused on practical expressions
3. Include formal and casual Malay variants
4. Create practice scenarios for work/life/tech contexts
5. Generate toggle quiz questions for active recall

Return ONLY valid JSON wrapped between:
<<<JSON_START>>>
{
  "theme": "...",
  "vocabulary_focus": [
    {
      "concept": "example concept",
      "expressions": {
        "en": "English expression",
        "cn": "Chinese expression",
        "bm_formal": "Formal Malay expression",
        "bm_casual": "Casual Malay expression"
      }
    }
  ],
  "practice_scenarios": {
    "work": {
      "scenario": "Work scenario description",
      "key_phrases": ["phrase1", "phrase2", "phrase3"]
    },
    "life": {
      "scenario": "Life scenario description",
      "key_phrases": ["phrase1", "phrase2", "phrase3"]
    },
    "tech": {
      "scenario": "Tech scenario description",
      "key_phrases": ["phrase1", "phrase2", "phrase3"]
    }
  },
  "quiz_toggle": [
    {
      "question": "Question in English/Chinese?",
      "answer": "Answer in Malay"
    }
  ]
}
<<<JSON_END>>>

Keep expressions natural and commonly used in Malaysia.
Focus on practical communication scenarios.`

// strictReminder is appended to the prompt after a parse or validation
// failure to push the model back toward the sentinel contract.
const strictReminder = `

IMPORTANT: Your previous response could not be parsed. Respond with ONLY the
JSON object wrapped between <<<JSON_START>>> and <<<JSON_END>>>. No prose,
no markdown fences, no text before or after the markers.`
