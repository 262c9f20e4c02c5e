// internal/assistant/router/prompt.go
package router

import (
	"encoding/json"
	"fmt"
	"strings"
)

const defaultSystemPrompt = "Jsi svatební asistent aplikace SvatBot. Odpovídej česky, stručně a prakticky. Pokud nemáš dost informací, řekni to."

// buildPrompt assembles the combined completion input: system instructions,
// serialized prior turns, the current question and the context as JSON. The
// history is excluded from the context blob so it is not sent twice.
func buildPrompt(req *AskRequest, searchAnswer string) string {
	var parts []string

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	parts = append(parts, systemPrompt)

	if req.Context != nil && len(req.Context.History) > 0 {
		parts = append(parts, "\nPředchozí konverzace:")
		for _, turn := range req.Context.History {
			parts = append(parts, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
		}
	}

	parts = append(parts, fmt.Sprintf("\nOtázka: %s", req.Query))

	if req.Context.HasMeaningful() {
		contextCopy := *req.Context
		contextCopy.History = nil
		contextJSON, _ := json.MarshalIndent(contextCopy, "", "  ")
		parts = append(parts, "\nData uživatele:")
		parts = append(parts, string(contextJSON))
	}

	if searchAnswer != "" {
		parts = append(parts, "\nVýsledek vyhledávání:")
		parts = append(parts, searchAnswer)
		parts = append(parts, "\nPřizpůsob odpověď datům uživatele a zachovej fakta z vyhledávání.")
	}

	return strings.Join(parts, "\n")
}

// buildShortContext condenses the personal context into a short instruction
// for the search backend. Anything over the adapter's character limit is
// dropped by the adapter, so this stays telegraphic.
func buildShortContext(c *Context) string {
	if !c.HasMeaningful() {
		return ""
	}

	var parts []string
	if c.WeddingDate != "" {
		parts = append(parts, "svatba "+c.WeddingDate)
	}
	if c.Venue != "" {
		parts = append(parts, "místo "+c.Venue)
	}
	if c.GuestCount > 0 {
		parts = append(parts, fmt.Sprintf("%d hostů", c.GuestCount))
	}
	if c.Budget > 0 {
		parts = append(parts, fmt.Sprintf("rozpočet %.0f Kč", c.Budget))
	}

	return strings.Join(parts, ", ")
}
