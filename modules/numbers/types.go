package numbers

import "context"

// Service names registered by the numbers module.
const (
	ServiceFibonacci = "fibonacci"
	ServicePrime     = "prime"
	ServiceLCM       = "lcm"
	ServiceHCF       = "hcf"
)

// FibonacciRequest asks for the first N Fibonacci terms.
type FibonacciRequest struct {
	N int `json:"n"`
}

// FibonacciResponse is the response from the fibonacci service.
type FibonacciResponse struct {
	Sequence []int64 `json:"sequence"`
	Error    string  `json:"error,omitempty"`
}

// ValuesRequest carries the integer operands for prime, lcm and hcf.
type ValuesRequest struct {
	Values []int64 `json:"values"`
}

// PrimeResponse is the response from the prime service.
type PrimeResponse struct {
	Primes []int64 `json:"primes"`
	Error  string  `json:"error,omitempty"`
}

// ScalarResponse is the response from the lcm and hcf services.
type ScalarResponse struct {
	Result int64  `json:"result"`
	Error  string `json:"error,omitempty"`
}

// NumbersPort is the interface other modules use to reach the number services.
type NumbersPort interface {
	Fibonacci(ctx context.Context, n int) ([]int64, error)
	Primes(ctx context.Context, values []int64) ([]int64, error)
	LCM(ctx context.Context, values []int64) (int64, error)
	HCF(ctx context.Context, values []int64) (int64, error)
}
