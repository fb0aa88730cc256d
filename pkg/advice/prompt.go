package advice

import "fmt"

// ResponseMarker ends the primary prompt; the model's answer follows it.
const ResponseMarker = "Response:"

const promptTemplate = `As an experienced career advisor, provide professional guidance based on industry best practices. 
Focus on actionable advice for this question: %s

Consider these aspects in your response:
- Current job market trends
- Professional development opportunities
- Practical next steps
- Industry-specific insights

` + ResponseMarker

const fallbackPromptPrefix = "Give me career advice about "

// BuildPrompt wraps question into the advisory template sent to the primary model.
func BuildPrompt(question string) string {
	return fmt.Sprintf(promptTemplate, question)
}

// BuildFallbackPrompt is the short prompt sent to the secondary model.
func BuildFallbackPrompt(question string) string {
	return fallbackPromptPrefix + question
}
