package ai

import "context"

// ServiceAsk is the request-reply service registered by the ai module.
const ServiceAsk = "ask"

// AskRequest is the request for the ask service.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the response from the ask service.
// Upstream marks Error as a model failure rather than invalid input.
type AskResponse struct {
	Answer   string `json:"answer"`
	Cached   bool   `json:"cached"`
	Error    string `json:"error,omitempty"`
	Upstream bool   `json:"upstream,omitempty"`
}

// AIPort is the interface other modules use to reach the ask service.
type AIPort interface {
	Ask(ctx context.Context, question string) (string, error)
}
