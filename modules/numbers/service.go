package numbers

import (
	"context"
	"errors"

	domain "github.com/example/bfhl-service/domain/numbers"
	"github.com/example/bfhl-service/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/middleware/requestid"
)

// fibonacci handles the numbers.fibonacci service request.
// Invalid input is reported in the response, not as a Go error.
func (m *Module) fibonacci(ctx context.Context, req FibonacciRequest, _ *mono.Msg) (FibonacciResponse, error) {
	if req.N < 0 || req.N > domain.MaxFibonacciTerms {
		return FibonacciResponse{Sequence: []int64{}, Error: operation.MsgInvalidFib}, nil
	}
	seq := domain.Fibonacci(req.N)
	m.logger.Debug("fibonacci computed", "n", req.N, "request_id", requestid.GetRequestID(ctx))
	return FibonacciResponse{Sequence: seq}, nil
}

// prime handles the numbers.prime service request.
// It gives up once the caller's deadline passes.
func (m *Module) prime(ctx context.Context, req ValuesRequest, _ *mono.Msg) (PrimeResponse, error) {
	primes, err := domain.FilterPrimes(ctx, req.Values)
	if err != nil {
		m.logger.Warn("prime filtering abandoned",
			"input", len(req.Values),
			"error", err,
			"request_id", requestid.GetRequestID(ctx))
		return PrimeResponse{}, err
	}
	m.logger.Debug("primes filtered",
		"input", len(req.Values),
		"primes", len(primes),
		"request_id", requestid.GetRequestID(ctx))
	return PrimeResponse{Primes: primes}, nil
}

// lcm handles the numbers.lcm service request.
func (m *Module) lcm(_ context.Context, req ValuesRequest, _ *mono.Msg) (ScalarResponse, error) {
	result, err := domain.LCM(req.Values)
	if err != nil {
		return ScalarResponse{Error: scalarMessage(err, operation.MsgLCMNonEmpty, operation.MsgLCMIntegers)}, nil
	}
	return ScalarResponse{Result: result}, nil
}

// hcf handles the numbers.hcf service request.
func (m *Module) hcf(_ context.Context, req ValuesRequest, _ *mono.Msg) (ScalarResponse, error) {
	result, err := domain.HCF(req.Values)
	if err != nil {
		return ScalarResponse{Error: scalarMessage(err, operation.MsgHCFNonEmpty, operation.MsgHCFIntegers)}, nil
	}
	return ScalarResponse{Result: result}, nil
}

func scalarMessage(err error, emptyMsg, rangeMsg string) string {
	if errors.Is(err, domain.ErrOutOfRange) {
		return rangeMsg
	}
	return emptyMsg
}
