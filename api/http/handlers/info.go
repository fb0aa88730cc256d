package handlers

import "github.com/gofiber/fiber/v2"

type infoResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	About    string `json:"about"`
	Greeting string `json:"greeting"`
}

// Info returns static texts for the chat front end.
// @Summary Front-end texts
// @Tags    info
// @Produce json
// @Success 200 {object} infoResponse
// @Router  /info [get]
func Info(greeting string) fiber.Handler {
	resp := infoResponse{
		Title:    "Career Advisor Bot",
		Subtitle: "Get personalized career advice powered by AI",
		About:    "This chatbot uses AI to provide career advice. The responses are generated using advanced language models.",
		Greeting: greeting,
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(resp)
	}
}
