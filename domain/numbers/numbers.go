// Package numbers holds the pure number-theory operations behind /bfhl.
package numbers

import (
	"context"
	"errors"
	"math"
)

// MaxFibonacciTerms is the largest term count whose last term fits in an int64.
const MaxFibonacciTerms = 93

var (
	// ErrEmptyInput is returned by HCF and LCM when given no values.
	ErrEmptyInput = errors.New("empty input")
	// ErrOutOfRange is returned by HCF and LCM for math.MinInt64, whose magnitude has no int64.
	ErrOutOfRange = errors.New("value out of range")
)

// primeCheckInterval is how many trial divisors IsPrimeContext tries between ctx checks.
const primeCheckInterval = 1 << 16

// Fibonacci returns the first n terms of 0, 1, 1, 2, 3, ...
// It returns an empty slice for n <= 0. Callers must keep n <= MaxFibonacciTerms.
func Fibonacci(n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	seq := make([]int64, n)
	if n > 1 {
		seq[1] = 1
	}
	for i := 2; i < n; i++ {
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq
}

// IsPrime reports whether n is prime using trial division up to sqrt(n).
func IsPrime(n int64) bool {
	prime, _ := IsPrimeContext(context.Background(), n)
	return prime
}

// IsPrimeContext is IsPrime that gives up with ctx.Err() once ctx is done.
// Trial division near MaxInt64 runs for seconds.
func IsPrimeContext(ctx context.Context, n int64) (bool, error) {
	if n < 2 {
		return false, nil
	}
	// i <= n/i avoids overflowing i*i near MaxInt64.
	for i := int64(2); i <= n/i; i++ {
		if n%i == 0 {
			return false, nil
		}
		if i%primeCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// GCD returns the greatest common divisor of a and b.
// The result is non-negative unless an operand is math.MinInt64.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// HCF folds GCD over values.
func HCF(values []int64) (int64, error) {
	if err := checkOperands(values); err != nil {
		return 0, err
	}
	result := abs(values[0])
	for _, v := range values[1:] {
		result = GCD(result, v)
	}
	return result, nil
}

// LCM folds the pairwise least common multiple over values.
// Any zero operand makes the result zero. Overflow is not detected.
func LCM(values []int64) (int64, error) {
	if err := checkOperands(values); err != nil {
		return 0, err
	}
	result := abs(values[0])
	for _, v := range values[1:] {
		v = abs(v)
		if result == 0 || v == 0 {
			result = 0
			continue
		}
		result = result / GCD(result, v) * v
	}
	return result, nil
}

// FilterPrimes returns the primes in values, preserving input order.
// It stops with ctx.Err() once ctx is done.
func FilterPrimes(ctx context.Context, values []int64) ([]int64, error) {
	primes := make([]int64, 0, len(values))
	for _, v := range values {
		prime, err := IsPrimeContext(ctx, v)
		if err != nil {
			return nil, err
		}
		if prime {
			primes = append(primes, v)
		}
	}
	return primes, nil
}

func checkOperands(values []int64) error {
	if len(values) == 0 {
		return ErrEmptyInput
	}
	for _, v := range values {
		if v == math.MinInt64 {
			return ErrOutOfRange
		}
	}
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
