package pay

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRequestHash(t *testing.T) {
	r1 := httptest.NewRequest(http.MethodPost, "/api/v1/payments/session", nil)
	r2 := httptest.NewRequest(http.MethodPost, "/api/v1/payments/session", nil)

	body := []byte(`{"items":[{"id":"v1"}]}`)
	h1 := computeRequestHash(r1, body, "usr_1")
	h2 := computeRequestHash(r2, body, "usr_1")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	assert.NotEqual(t, h1, computeRequestHash(r1, body, "usr_2"))
	assert.NotEqual(t, h1, computeRequestHash(r1, []byte(`{}`), "usr_1"))

	r3 := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	assert.NotEqual(t, h1, computeRequestHash(r3, body, "usr_1"))
}

func TestCaptureResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	crw := NewCaptureResponseWriter(rr)

	crw.WriteHeader(http.StatusCreated)
	crw.WriteHeader(http.StatusTeapot) // second call ignored
	_, err := crw.Write([]byte(`{"ok":true}`))
	assert.NoError(t, err)

	assert.Equal(t, http.StatusCreated, crw.Status())
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"ok":true}`, string(crw.BodyBytes()))
	assert.Equal(t, `{"ok":true}`, rr.Body.String())
}

func TestCaptureResponseWriterDefaultsToOK(t *testing.T) {
	rr := httptest.NewRecorder()
	crw := NewCaptureResponseWriter(rr)

	_, _ = crw.Write([]byte("hi"))
	assert.Equal(t, http.StatusOK, crw.Status())
	assert.True(t, strings.Contains(rr.Body.String(), "hi"))
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, isDuplicateKeyError(nil))
	assert.False(t, isDuplicateKeyError(assert.AnError))
}
