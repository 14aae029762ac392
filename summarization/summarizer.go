package summarization

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/dhanu742005-ai/pothole-app/types"
)

const maxSegmentsForSummary = 50
const maxPromptLength = 15000 // Rough character limit for prompt

// GenerateSegmentsSummary asks OpenAI for a short natural-language summary of
// the current bad-segment set, for dashboard display. It is an optional
// enrichment: callers skip it entirely when no API key is configured, and
// treat errors as "no summary".
func GenerateSegmentsSummary(ctx context.Context, segments []types.BadSegment, client *openai.Client) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	var lines []string
	for i, seg := range segments {
		if i >= maxSegmentsForSummary {
			log.Printf("Reached max segment limit (%d) for summary.", maxSegmentsForSummary)
			break
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %d potholes, %s severity",
			seg.RoadName, seg.Area, seg.PotholeCount, seg.MaxSeverity))
	}

	combined := strings.Join(lines, "\n")
	if len(combined) > maxPromptLength {
		log.Printf("Warning: Segment list exceeds max prompt length (%d), truncating.", maxPromptLength)
		combined = truncateAtRuneBoundary(combined, maxPromptLength)
	}

	prompt := fmt.Sprintf("Summarize the following list of damaged road segments for a city road-maintenance dashboard. Highlight the worst-affected roads and areas and the overall scale of the damage. Provide a concise summary (2-3 sentences maximum):\n\n---\n%s\n---\n\nSummary:", combined)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes road damage reports for maintenance staff concisely.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)

	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// truncateAtRuneBoundary cuts s to at most limit bytes without splitting a
// multi-byte rune, so road and area names stay valid UTF-8 in the prompt.
func truncateAtRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
