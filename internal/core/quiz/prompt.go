package quiz

import (
	"fmt"
	"strings"
)

var difficultyText = map[Difficulty]string{
	DifficultyEasy:   "beginner level",
	DifficultyMedium: "intermediate level",
	DifficultyHard:   "expert level",
}

// buildGenerationPrompt encodes type, count and difficulty and demands a
// strict JSON list, the shape the parser accepts first.
func buildGenerationPrompt(contextText string, spec Spec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: generate a quiz of %d questions (difficulty: %s) based strictly on the document below.\n",
		spec.Count, difficultyText[spec.Difficulty])
	b.WriteString("--- BEGIN DOCUMENT ---\n")
	b.WriteString(contextText)
	b.WriteString("\n--- END DOCUMENT ---\n\n")

	b.WriteString("--- REQUIRED OUTPUT FORMAT ---\n")
	b.WriteString("1. Reply ONLY with a valid JSON list starting with `[` and ending with `]`.\n")
	b.WriteString("2. Add NO text, comment or formatting (such as ```json) before or after the list.\n")
	b.WriteString("3. The structure of each JSON object depends on the question type:\n")

	switch spec.Type {
	case TypeMCQ:
		b.WriteString("   For multiple choice: {\"question\": \"...\", \"options\": [\"...\", \"...\", \"...\"], \"correct_answer\": \"...\", \"explanation\": \"...\"}\n")
		b.WriteString("   - 'options' must list at least 3 strings.\n")
		b.WriteString("   - 'correct_answer' must match EXACTLY one of the strings in 'options'.\n")
	case TypeTrueFalse:
		b.WriteString("   For true/false: {\"question\": \"...\", \"correct_answer\": true, \"explanation\": \"...\"}\n")
		b.WriteString("   - 'correct_answer' must be a JSON boolean (true or false, without quotes).\n")
	case TypeOpen:
		b.WriteString("   For open questions: {\"question\": \"...\", \"ideal_answer_points\": [\"...\", \"...\"], \"explanation\": \"...\"}\n")
		b.WriteString("   - 'ideal_answer_points' lists the key points an ideal answer covers.\n")
	}

	fmt.Fprintf(&b, "\nGenerate exactly %d questions. Start your reply directly with `[`.\n", spec.Count)
	return b.String()
}

// buildFeedbackPrompt asks the model to review an open answer against the
// question's expected key points and the document context.
func buildFeedbackPrompt(q Question, submitted, contextText string) string {
	var b strings.Builder

	b.WriteString("Role: you review a user's answer to an open question, based strictly on the expected key points and the document context below.\n")
	b.WriteString("\n--- DOCUMENT CONTEXT ---\n")
	if contextText != "" {
		b.WriteString(contextText)
	} else {
		b.WriteString("[no context available]")
	}
	b.WriteString("\n--- QUESTION ---\n")
	b.WriteString(q.Prompt)
	b.WriteString("\n--- EXPECTED KEY POINTS ---\n")
	if len(q.ReferencePoints) > 0 {
		b.WriteString("- " + strings.Join(q.ReferencePoints, "\n- "))
	} else {
		b.WriteString("[none specified]")
	}
	b.WriteString("\n--- USER ANSWER ---\n")
	b.WriteString(submitted)
	b.WriteString("\n--- INSTRUCTIONS ---\n")
	b.WriteString("Start with a one-word verdict (Correct. / Partially correct. / Incorrect.), then explain briefly which key points were covered or missed. Be concise.\n")
	return b.String()
}
