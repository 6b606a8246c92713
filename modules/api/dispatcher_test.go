package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/example/bfhl-service/domain/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsInteger(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{name: "integer", in: json.Number("42"), want: 42, wantOK: true},
		{name: "negative", in: json.Number("-7"), want: -7, wantOK: true},
		{name: "integral float", in: json.Number("5.0"), want: 5, wantOK: true},
		{name: "exponent", in: json.Number("1e3"), want: 1000, wantOK: true},
		{name: "fraction", in: json.Number("2.5"), wantOK: false},
		{name: "too large", in: json.Number("1e30"), wantOK: false},
		{name: "string", in: "5", wantOK: false},
		{name: "bool", in: true, wantOK: false},
		{name: "nil", in: nil, wantOK: false},
		{name: "float64", in: float64(3), wantOK: false},
		{name: "max int64", in: json.Number("9223372036854775807"), want: math.MaxInt64, wantOK: true},
		{name: "min int64 + 1", in: json.Number("-9223372036854775807"), want: math.MinInt64 + 1, wantOK: true},
		{name: "min int64", in: json.Number("-9223372036854775808"), wantOK: false},
		{name: "min int64 as float", in: json.Number("-9.223372036854775808e18"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asInteger(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKeys int
		wantErr  bool
	}{
		{name: "empty", body: "", wantKeys: 0},
		{name: "whitespace", body: "  \n", wantKeys: 0},
		{name: "object", body: `{"lcm":[1,2]}`, wantKeys: 1},
		{name: "padded object", body: ` {"a":1,"b":2} `, wantKeys: 2},
		{name: "array", body: `[1]`, wantErr: true},
		{name: "string", body: `"x"`, wantErr: true},
		{name: "number", body: `5`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "truncated", body: `{"a":`, wantErr: true},
		{name: "trailing", body: `{"a":1}x`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := decodeObject([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, fields, tt.wantKeys)
		})
	}
}

func TestDecodeObjectKeepsLargeIntegersExact(t *testing.T) {
	fields, err := decodeObject([]byte(`{"prime":[9007199254740993]}`))
	require.NoError(t, err)

	items := fields["prime"].([]any)
	n, ok := asInteger(items[0])
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)
}

func TestDispatcher_StatusMapping(t *testing.T) {
	upstream := &mockAIPort{askFunc: func(context.Context, string) (string, error) {
		return "", errors.Join(operation.ErrUpstream, errors.New("boom"))
	}}

	tests := []struct {
		name       string
		strict     bool
		body       string
		wantStatus int
	}{
		{name: "compat invalid input", strict: false, body: `{"lcm":[]}`, wantStatus: 500},
		{name: "strict invalid input", strict: true, body: `{"lcm":[]}`, wantStatus: 400},
		{name: "compat upstream", strict: false, body: `{"AI":"q"}`, wantStatus: 500},
		{name: "strict upstream", strict: true, body: `{"AI":"q"}`, wantStatus: 500},
		{name: "strict shape error", strict: true, body: `{}`, wantStatus: 400},
		{name: "compat shape error", strict: false, body: `{"x":1}`, wantStatus: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(localNumbers{}, upstream, tt.strict, 0)
			outcome := d.Dispatch(context.Background(), []byte(tt.body))
			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.False(t, outcome.Success())
			assert.Nil(t, outcome.Data)
		})
	}
}

func TestDispatcher_RecordsOperation(t *testing.T) {
	d := NewDispatcher(localNumbers{}, &mockAIPort{}, false, 0)

	outcome := d.Dispatch(context.Background(), []byte(`{"hcf":[8,12]}`))
	require.True(t, outcome.Success())
	assert.Equal(t, operation.HCF, outcome.Operation)
	assert.Equal(t, int64(4), outcome.Data)

	outcome = d.Dispatch(context.Background(), []byte(`{"foo":1}`))
	assert.Empty(t, outcome.Operation)
}

// blockingNumbers waits for ctx to end, the way a service call does when the
// remote handler outlives the caller's deadline.
type blockingNumbers struct {
	localNumbers
	deadlines chan bool
}

func (b blockingNumbers) Primes(ctx context.Context, _ []int64) ([]int64, error) {
	_, ok := ctx.Deadline()
	b.deadlines <- ok
	<-ctx.Done()
	return nil, operation.NewUpstreamError("prime service call failed", ctx.Err())
}

func TestDispatcher_ServiceCallTimeout(t *testing.T) {
	for _, strict := range []bool{false, true} {
		port := blockingNumbers{deadlines: make(chan bool, 1)}
		d := NewDispatcher(port, &mockAIPort{}, strict, 20*time.Millisecond)

		start := time.Now()
		outcome := d.Dispatch(context.Background(), []byte(`{"prime":[9223372036854775783]}`))

		assert.True(t, <-port.deadlines, "service call should carry a deadline")
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, 500, outcome.Status, "strict=%v", strict)
		assert.Equal(t, operation.Prime, outcome.Operation)
		require.Error(t, outcome.Err)
		assert.Equal(t, "prime timed out after 20ms", outcome.Err.Error())
		assert.ErrorIs(t, outcome.Err, operation.ErrUpstream)
		assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	}
}

func TestDispatcher_CallerCancellationIsNotReportedAsTimeout(t *testing.T) {
	port := blockingNumbers{deadlines: make(chan bool, 1)}
	d := NewDispatcher(port, &mockAIPort{}, false, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-port.deadlines
		cancel()
	}()
	outcome := d.Dispatch(ctx, []byte(`{"prime":[7]}`))

	assert.Equal(t, 500, outcome.Status)
	assert.Equal(t, "prime service call failed", outcome.Err.Error())
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}

func TestDispatcher_ZeroTimeoutKeepsCallerContext(t *testing.T) {
	port := blockingNumbers{deadlines: make(chan bool, 1)}
	d := NewDispatcher(port, &mockAIPort{}, false, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		assert.False(t, <-port.deadlines, "no deadline without a timeout")
		cancel()
	}()
	outcome := d.Dispatch(ctx, []byte(`{"prime":[7]}`))
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}
