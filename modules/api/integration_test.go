package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/example/bfhl-service/config"
	"github.com/example/bfhl-service/domain/operation"
	"github.com/example/bfhl-service/modules/ai"
	"github.com/example/bfhl-service/modules/analytics"
	"github.com/example/bfhl-service/modules/numbers"
	"github.com/go-monolith/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startService runs the real numbers, ai, analytics and api modules inside a
// mono application, so requests travel through the adapters and request-reply
// services. No Gemini key is configured.
func startService(t *testing.T, strict bool) *Module {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.OfficialEmail = testEmail
	cfg.StrictValidation = strict
	cfg.Port = 0 // any free port; requests go through app.Test
	cfg.ServiceCallTimeout = 5 * time.Second

	apiModule := NewModule(cfg, &mockLogger{})
	for _, m := range []mono.Module{
		numbers.NewModule(&mockLogger{}),
		ai.NewModule("", cfg.GeminiModel, nil, &mockLogger{}),
		analytics.NewModule(&mockLogger{}),
		apiModule,
	} {
		require.NoError(t, app.Register(m))
	}

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})
	return apiModule
}

func TestService_BFHL(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		compatStatus int
		strictStatus int
		wantData     string
		wantError    string
	}{
		{name: "fibonacci", body: `{"fibonacci":7}`, compatStatus: 200, strictStatus: 200, wantData: `[0,1,1,2,3,5,8]`},
		{name: "fibonacci zero", body: `{"fibonacci":0}`, compatStatus: 200, strictStatus: 200, wantData: `[]`},
		{name: "fibonacci one", body: `{"fibonacci":1}`, compatStatus: 200, strictStatus: 200, wantData: `[0]`},
		{name: "fibonacci negative", body: `{"fibonacci":-3}`, compatStatus: 500, strictStatus: 400, wantError: operation.MsgInvalidFib},
		{name: "fibonacci past int64", body: `{"fibonacci":94}`, compatStatus: 500, strictStatus: 400, wantError: operation.MsgInvalidFib},
		{name: "prime", body: `{"prime":[2,4,7,9,11]}`, compatStatus: 200, strictStatus: 200, wantData: `[2,7,11]`},
		{name: "prime empty", body: `{"prime":[]}`, compatStatus: 200, strictStatus: 200, wantData: `[]`},
		{name: "lcm", body: `{"lcm":[12,18,24]}`, compatStatus: 200, strictStatus: 200, wantData: `72`},
		{name: "lcm empty", body: `{"lcm":[]}`, compatStatus: 500, strictStatus: 400, wantError: operation.MsgLCMNonEmpty},
		{name: "hcf", body: `{"hcf":[24,36,60]}`, compatStatus: 200, strictStatus: 200, wantData: `12`},
		{name: "hcf empty", body: `{"hcf":[]}`, compatStatus: 500, strictStatus: 400, wantError: operation.MsgHCFNonEmpty},
		{name: "hcf min int64", body: `{"hcf":[-9223372036854775808]}`, compatStatus: 500, strictStatus: 400, wantError: operation.MsgHCFIntegers},
		{name: "ai without api key", body: `{"AI":"What is the capital of France?"}`, compatStatus: 500, strictStatus: 500, wantError: ai.ErrNotConfigured.Error()},
		{name: "ai blank", body: `{"AI":"   "}`, compatStatus: 500, strictStatus: 400, wantError: operation.MsgAIQuestion},
	}

	for _, strict := range []bool{false, true} {
		mode := "compat"
		if strict {
			mode = "strict"
		}

		// Each mode gets its own subtest so the previous service (and its
		// embedded NATS listener) is cleaned up before the next one starts.
		t.Run(mode, func(t *testing.T) {
			m := startService(t, strict)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					resp, body := doRequest(t, m.app, http.MethodPost, "/bfhl", tt.body)

					wantStatus := tt.compatStatus
					if strict {
						wantStatus = tt.strictStatus
					}
					assert.Equal(t, wantStatus, resp.StatusCode)
					assert.Equal(t, testEmail, body["official_email"])

					if tt.wantData != "" {
						assert.Equal(t, true, body["is_success"])
						got, err := json.Marshal(body["data"])
						require.NoError(t, err)
						assert.JSONEq(t, tt.wantData, string(got))
						return
					}
					assert.Equal(t, false, body["is_success"])
					assert.NotContains(t, body, "data")
					assert.Equal(t, tt.wantError, body["error"])
				})
			}
		})
	}
}

func TestService_StatsCountDispatches(t *testing.T) {
	m := startService(t, false)

	for _, body := range []string{`{"fibonacci":5}`, `{"lcm":[4,6]}`, `{"lcm":[]}`, `{}`} {
		doRequest(t, m.app, http.MethodPost, "/bfhl", body)
	}

	// Dispatch events reach analytics asynchronously.
	var summary analytics.Summary
	require.Eventually(t, func() bool {
		_, body := doRequest(t, m.app, http.MethodGet, "/bfhl/stats", "")
		raw, err := json.Marshal(body["data"])
		if err != nil || json.Unmarshal(raw, &summary) != nil {
			return false
		}
		return summary.Total == 4
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, int64(1), summary.Operations["fibonacci"].Success)
	assert.Equal(t, int64(1), summary.Operations["lcm"].Success)
	assert.Equal(t, int64(1), summary.Operations["lcm"].Failure)
	assert.Equal(t, int64(1), summary.Operations["rejected"].Failure)
	assert.Equal(t, int64(2), summary.StatusCodes[200])
	assert.Equal(t, int64(1), summary.StatusCodes[500])
	assert.Equal(t, int64(1), summary.StatusCodes[400])
	assert.Greater(t, summary.Operations["fibonacci"].AvgDurationMs, 0.0)
}

func TestService_HealthAndEnvelope(t *testing.T) {
	m := startService(t, false)

	resp, body := doRequest(t, m.app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_success"])
	assert.Equal(t, testEmail, body["official_email"])
	assert.True(t, m.Health(context.Background()).Healthy)
}
