package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"skybook/internal/modules/followup"
)

// GeminiProvider implements Extractor, followup.Embedder and followup.Filter
// using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	extractor *genai.GenerativeModel
	chat      *genai.GenerativeModel
	embedder  *genai.EmbeddingModel
	loc       *time.Location
	now       func() time.Time
}

// NewGeminiProvider initializes a new Gemini client.
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	embeddingName := cfg.EmbeddingModel
	if embeddingName == "" {
		embeddingName = DefaultEmbeddingModel
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	// Extraction must come back as JSON and stay deterministic.
	extractor := client.GenerativeModel(modelName)
	extractor.ResponseMIMEType = "application/json"
	extractor.SetTemperature(0)

	chat := client.GenerativeModel(modelName)
	chat.SetTemperature(0)

	return &GeminiProvider{
		client:    client,
		extractor: extractor,
		chat:      chat,
		embedder:  client.EmbeddingModel(embeddingName),
		loc:       loc,
		now:       time.Now,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ExtractBooking asks the model for the raw extraction of message.
func (p *GeminiProvider) ExtractBooking(ctx context.Context, message, conversation string) ([]byte, error) {
	prompt := buildExtractionPrompt(p.now().In(p.loc), conversation, message)
	text, err := generateText(ctx, p.extractor, prompt)
	if err != nil {
		return nil, err
	}
	return []byte(cleanJSONString(text)), nil
}

// FilterFollowUp narrows pastReply to what query asks for, or replies with
// followup.NewQueryMarker when query is not a follow-up.
func (p *GeminiProvider) FilterFollowUp(ctx context.Context, query, pastReply string) (string, error) {
	return generateText(ctx, p.chat, buildFilterPrompt(query, pastReply))
}

// Embed returns the embedding vector of text.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := p.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding error: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}
	return res.Embedding.Values, nil
}

func generateText(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	return responseText.String(), nil
}

// buildExtractionPrompt constructs the instructions for the extraction call.
func buildExtractionPrompt(now time.Time, conversation, message string) string {
	if conversation == "" {
		conversation = "NONE"
	}

	return fmt.Sprintf(`Role: You are a flight booking assistant for domestic flights in Pakistan.
Context:
- Today: %s (%s)
- Recent conversation:
%s

TASK:
Extract the flight request in the user message below into JSON. Use the recent
conversation only to fill in details the user refers back to.

RULES:
1. If the message is offensive, abusive, or not about booking a flight, return ONLY
   {"message": "<a short, respectful reply explaining you can only help with flight bookings>"}.
2. Copy place names as the user wrote them (city names or IATA codes). Do not invent places.
3. Copy date expressions as the user wrote them ("tomorrow", "in 3 days", "12 July").
   Only write YYYY-MM-DD when the user gave a full calendar date.
4. "TripType" is one of "one_way", "round_trip", "multi_city". Default "one_way".
   - one_way uses "source", "destination", "date".
   - round_trip uses "source", "destination", "departure_date", "return_date".
   - multi_city uses "flights": [{"source", "destination", "date"}, ...] in travel order.
5. "TravelClass" is the cabin (economy, business, ...). Leave empty if not mentioned.
6. "Travelers" lists phrases such as "2 adults", "1 child", "1 infant". Leave empty if not mentioned.
7. "airline_detected" lists every airline the user mentions, spelled as written.
8. Leave any field you cannot find empty. Never guess.

Output JSON Schema:
{
  "message": "string (only for rule 1)",
  "source": "string",
  "destination": "string",
  "date": "string",
  "departure_date": "string",
  "return_date": "string",
  "flights": [{"source": "string", "destination": "string", "date": "string"}],
  "TripType": "one_way" | "round_trip" | "multi_city",
  "TravelClass": "string",
  "Travelers": ["string"],
  "airline_detected": ["string"]
}

User Message: %s`, now.Format("2006-01-02"), now.Weekday(), conversation, message)
}

// buildFilterPrompt asks the model to answer a follow-up from a past reply.
func buildFilterPrompt(query, pastReply string) string {
	var hints strings.Builder
	for _, h := range airlineHints {
		fmt.Fprintf(&hints, "  - %q = %s\n", h.Airline, h.Provider)
	}

	return fmt.Sprintf(`You're a flight assistant. The user previously received this result:
PAST RESULT:
%s

User now asks: %q

Instructions:
- Filter and return ONLY the relevant flights from the past result, in the same format.
- Use this airline mapping:
%s- If nothing in the past result answers the question, or it is not a follow-up, reply exactly "%s".`,
		pastReply, query, hints.String(), followup.NewQueryMarker)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
