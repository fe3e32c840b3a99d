// Package assistant is a stateless wrapper around an OpenAI-compatible chat
// completions API. The system prompt is assembled partly from the emissions
// core's current top-emitter view so answers stay grounded in the data the
// dashboard shows.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/climatedash/emissions-dashboard/internal/emissions"
)

const fallbackReply = "Sorry, the assistant is unavailable right now. " +
	"The emissions dashboard itself is unaffected - please try again in a moment."

// Assistant proxies chat messages to an external LLM API.
type Assistant struct {
	client  *http.Client
	service *emissions.Service
	baseURL string
	apiKey  string
	model   string
}

// New creates an Assistant. An empty apiKey disables upstream calls; every
// chat then returns the fallback reply.
func New(client *http.Client, service *emissions.Service, baseURL, apiKey, model string) *Assistant {
	return &Assistant{
		client:  client,
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends the user's message with a data-grounded system prompt and
// returns the model's reply. Upstream failures produce the canned fallback
// reply, never an error page.
func (a *Assistant) Chat(ctx context.Context, message string) string {
	if a.apiKey == "" {
		return fallbackReply
	}

	reply, err := a.complete(ctx, message)
	if err != nil {
		log.Printf("WARN: assistant chat failed: %v", err)
		return fallbackReply
	}
	return reply
}

func (a *Assistant) complete(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: a.systemPrompt(ctx)},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat completions returned %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// systemPrompt grounds the assistant in the dashboard's current data. A
// degraded emissions fetch just yields a prompt without figures.
func (a *Assistant) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("You are a climate data assistant for a greenhouse-gas emissions dashboard. ")
	b.WriteString("Answer concisely using the figures below when relevant.\n")

	resp := a.service.CountryEmissions(ctx, emissions.QueryOptions{})
	if resp.APIStatus == emissions.StatusOK && len(resp.Countries) > 0 {
		b.WriteString(fmt.Sprintf("World CO2 total: %.0f Mt.\nTop emitters (Mt CO2): ", resp.WorldTotals.CO2))
		for i, rec := range resp.Countries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%s %.0f", rec.Name, rec.GasValues.CO2))
		}
		b.WriteString(".\n")
	}

	return b.String()
}
