package numbers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// numbersAdapter wraps ServiceContainer for type-safe cross-module communication.
type numbersAdapter struct {
	container mono.ServiceContainer
}

// NewNumbersAdapter creates a new adapter for the numbers services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewNumbersAdapter(container mono.ServiceContainer) NumbersPort {
	if container == nil {
		panic("numbers adapter requires non-nil ServiceContainer")
	}
	return &numbersAdapter{container: container}
}

// Fibonacci calls the fibonacci service.
func (a *numbersAdapter) Fibonacci(ctx context.Context, n int) ([]int64, error) {
	req := FibonacciRequest{N: n}
	var resp FibonacciResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceFibonacci,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, serviceCallError(ServiceFibonacci, err)
	}
	if resp.Error != "" {
		return nil, operation.NewInputError(resp.Error)
	}
	return nonNil(resp.Sequence), nil
}

// Primes calls the prime service.
func (a *numbersAdapter) Primes(ctx context.Context, values []int64) ([]int64, error) {
	req := ValuesRequest{Values: values}
	var resp PrimeResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServicePrime,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, serviceCallError(ServicePrime, err)
	}
	if resp.Error != "" {
		return nil, operation.NewInputError(resp.Error)
	}
	return nonNil(resp.Primes), nil
}

// LCM calls the lcm service.
func (a *numbersAdapter) LCM(ctx context.Context, values []int64) (int64, error) {
	return a.scalar(ctx, ServiceLCM, values)
}

// HCF calls the hcf service.
func (a *numbersAdapter) HCF(ctx context.Context, values []int64) (int64, error) {
	return a.scalar(ctx, ServiceHCF, values)
}

func (a *numbersAdapter) scalar(ctx context.Context, service string, values []int64) (int64, error) {
	req := ValuesRequest{Values: values}
	var resp ScalarResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return 0, serviceCallError(service, err)
	}
	if resp.Error != "" {
		return 0, operation.NewInputError(resp.Error)
	}
	return resp.Result, nil
}

// serviceCallError keeps the transport detail as the cause and shows clients only the service name.
func serviceCallError(service string, err error) error {
	return operation.NewUpstreamError(fmt.Sprintf("%s service call failed", service), err)
}

// nonNil keeps empty results serializing as [] rather than null.
func nonNil(values []int64) []int64 {
	if values == nil {
		return []int64{}
	}
	return values
}
