package api

// Envelope is the body of every /health and /bfhl response.
// Data is present only on success and Error only on failure.
type Envelope struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
}
