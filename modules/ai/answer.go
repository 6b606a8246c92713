package ai

import (
	"strings"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/google/generative-ai-go/genai"
)

// FirstWord returns the first whitespace-delimited token of the first
// candidate's first part, or "Unknown" when any step of that path is missing.
func FirstWord(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return operation.MsgUnknownAnswer
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return operation.MsgUnknownAnswer
	}
	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return operation.MsgUnknownAnswer
	}
	fields := strings.Fields(string(text))
	if len(fields) == 0 {
		return operation.MsgUnknownAnswer
	}
	return fields[0]
}
