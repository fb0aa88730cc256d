package advice

import "fmt"

// User-facing texts. Every path through the requesters ends in one of these
// or in model output.
const (
	AuthErrorMessage             = "Authentication Error: Please check if your Hugging Face API token is valid. Make sure HF_API_TOKEN holds the correct token."
	ConnectionTroubleMessage     = "I'm having trouble connecting to my knowledge base. Please try again later."
	GenerationDifficultyMessage  = "I'm currently having difficulty generating specific career advice. Please try asking in a different way."
	TechnicalDifficultiesMessage = "I'm experiencing technical difficulties. Please try again in a moment."
)

func apiErrorMessage(status int) string {
	return fmt.Sprintf("API Error: Received status code %d. Please try again later or try with a different question.", status)
}
