package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/example/bfhl-service/modules/ai"
	"github.com/example/bfhl-service/modules/numbers"
	"github.com/gofiber/fiber/v2"
)

// Outcome is the result of dispatching one /bfhl body.
// Exactly one of Data and Err is set.
type Outcome struct {
	Operation operation.Operation // empty when the body was rejected before routing
	Status    int
	Data      any
	Err       error
}

// Success reports whether the operation produced data.
func (o Outcome) Success() bool {
	return o.Err == nil
}

// Dispatcher validates /bfhl bodies and routes them to the numbers and ai services.
type Dispatcher struct {
	numbers numbers.NumbersPort
	ai      ai.AIPort
	strict  bool
	timeout time.Duration
}

// NewDispatcher creates a dispatcher. With strict set, invalid operation input
// is answered with 400 instead of 500. A positive timeout bounds each service
// call; zero leaves the caller's context as is.
func NewDispatcher(numbersPort numbers.NumbersPort, aiPort ai.AIPort, strict bool, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		numbers: numbersPort,
		ai:      aiPort,
		strict:  strict,
		timeout: timeout,
	}
}

// Dispatch handles one request body. An empty body is treated as {}.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) Outcome {
	fields, err := decodeObject(body)
	if err != nil {
		return rejected(operation.MsgInvalidBody)
	}
	if len(fields) != 1 {
		return rejected(operation.MsgExactlyOneKey)
	}

	var key string
	var value any
	for k, v := range fields {
		key, value = k, v
	}
	op, ok := operation.Parse(key)
	if !ok {
		return rejected(operation.MsgInvalidKey)
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	data, err := d.run(callCtx, op, value)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = operation.NewUpstreamError(fmt.Sprintf("%s timed out after %s", op, d.timeout), err)
		}
		return Outcome{Operation: op, Status: d.statusFor(err), Err: err}
	}
	return Outcome{Operation: op, Status: fiber.StatusOK, Data: data}
}

func (d *Dispatcher) run(ctx context.Context, op operation.Operation, value any) (any, error) {
	switch op {
	case operation.Fibonacci:
		n, ok := asInteger(value)
		if !ok || n < 0 || n > math.MaxInt32 {
			return nil, operation.NewInputError(operation.MsgInvalidFib)
		}
		return d.numbers.Fibonacci(ctx, int(n))

	case operation.Prime:
		items, ok := value.([]any)
		if !ok {
			return nil, operation.NewInputError(operation.MsgPrimeArray)
		}
		// Non-integer elements are skipped, not rejected.
		values := make([]int64, 0, len(items))
		for _, item := range items {
			if v, ok := asInteger(item); ok {
				values = append(values, v)
			}
		}
		return d.numbers.Primes(ctx, values)

	case operation.LCM:
		values, err := integerArray(value, operation.MsgLCMNonEmpty, operation.MsgLCMIntegers)
		if err != nil {
			return nil, err
		}
		return d.numbers.LCM(ctx, values)

	case operation.HCF:
		values, err := integerArray(value, operation.MsgHCFNonEmpty, operation.MsgHCFIntegers)
		if err != nil {
			return nil, err
		}
		return d.numbers.HCF(ctx, values)

	case operation.AI:
		question, ok := value.(string)
		if !ok {
			return nil, operation.NewInputError(operation.MsgAIQuestion)
		}
		return d.ai.Ask(ctx, question)
	}
	return nil, operation.NewInputError(operation.MsgInvalidKey)
}

// statusFor maps an operation error to an HTTP status.
func (d *Dispatcher) statusFor(err error) int {
	if errors.Is(err, operation.ErrInvalidInput) && d.strict {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func rejected(msg string) Outcome {
	return Outcome{Status: fiber.StatusBadRequest, Err: operation.NewInputError(msg)}
}

// decodeObject parses body as a single JSON object, keeping numbers as json.Number.
func decodeObject(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]any{}, nil
	}
	if body[0] != '{' {
		return nil, errors.New("body is not a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON object")
	}
	return fields, nil
}

// asInteger accepts JSON numbers without a fractional part, so 5.0 and 1e3 qualify.
// math.MinInt64 is rejected: its absolute value does not fit in an int64.
func asInteger(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, i != math.MinInt64
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f <= math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// integerArray requires an array of integers. An empty array is passed through
// so the numbers service reports it.
func integerArray(v any, notArrayMsg, notIntegerMsg string) ([]int64, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, operation.NewInputError(notArrayMsg)
	}
	values := make([]int64, 0, len(items))
	for _, item := range items {
		n, ok := asInteger(item)
		if !ok {
			return nil, operation.NewInputError(notIntegerMsg)
		}
		values = append(values, n)
	}
	return values, nil
}
