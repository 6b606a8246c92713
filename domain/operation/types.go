// Package operation defines the operations accepted by POST /bfhl.
package operation

// Operation is the single key of a /bfhl request body.
type Operation string

const (
	// Fibonacci returns the first n Fibonacci terms.
	Fibonacci Operation = "fibonacci"
	// Prime filters an array down to its prime members.
	Prime Operation = "prime"
	// LCM computes the least common multiple of an array.
	LCM Operation = "lcm"
	// HCF computes the highest common factor of an array.
	HCF Operation = "hcf"
	// AI forwards a question to the generative-language API.
	AI Operation = "AI"
)

// All lists every recognized operation.
var All = []Operation{Fibonacci, Prime, LCM, HCF, AI}

// Parse returns the Operation named by key. Matching is case-sensitive.
func Parse(key string) (Operation, bool) {
	op := Operation(key)
	for _, known := range All {
		if op == known {
			return op, true
		}
	}
	return "", false
}

// Validation messages returned to clients. Wording matches the public API.
const (
	MsgExactlyOneKey = "Exactly one key is required"
	MsgInvalidKey    = "Invalid key"
	MsgInvalidBody   = "Invalid JSON body"
	MsgInvalidFib    = "Invalid fibonacci input"
	MsgPrimeArray    = "Prime expects integer array"
	MsgLCMNonEmpty   = "LCM expects non-empty array"
	MsgLCMIntegers   = "LCM expects integer array"
	MsgHCFNonEmpty   = "HCF expects non-empty array"
	MsgHCFIntegers   = "HCF expects integer array"
	MsgAIQuestion    = "AI expects a string question"
	MsgUnknownAnswer = "Unknown"
)
