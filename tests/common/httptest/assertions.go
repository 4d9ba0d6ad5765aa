//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorEnvelope mirrors httperr.Response on the wire.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// AssertSuccessResponse decodes the body into target for 2xx statuses.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "failed to decode body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the envelope message contains msg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, msg string) {
	t.Helper()
	env := decodeEnvelope(t, w, expectedStatus)
	if msg != "" {
		assert.Contains(t, env.Error.Message, msg)
	}
}

// AssertRejection checks a refused coupon code: 422 with the reason in detail.
func AssertRejection(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	env := decodeEnvelope(t, w, http.StatusUnprocessableEntity)

	var detail struct {
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(env.Detail, &detail), "rejection without detail: %s", w.Body.String())
	assert.Equal(t, "code", detail.Field)
	assert.Equal(t, reason, detail.Reason)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) errorEnvelope {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "failed to decode error body: %s", w.Body.String())
	return env
}
