package signing

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/testing/leaktest"
)

func newTestVerifier(key string) *Verifier {
	v := NewVerifier(key, DefaultMaxAge)
	v.now = func() time.Time { return fixedNow }
	return v
}

func signedBody(t *testing.T, s *Signer, payload interface{}) []byte {
	t.Helper()
	env, err := s.Sign(payload)
	require.NoError(t, err)
	body, err := json.Marshal(env)
	require.NoError(t, err)
	return body
}

func TestVerifier_Enforced(t *testing.T) {
	v := newTestVerifier(testKey)
	require.Equal(t, ModeEnforced, v.Mode())

	signer := NewSigner(testKey)
	signer.now = func() time.Time { return fixedNow }

	body := signedBody(t, signer, samplePayload())
	payload, err := v.Open(body)
	require.NoError(t, err)

	var got domain.SpinRequest
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, samplePayload(), got)
}

func TestVerifier_EnforcedRejectsReplay(t *testing.T) {
	v := newTestVerifier(testKey)
	signer := newTestSigner(testKey)

	body := signedBody(t, signer, samplePayload())
	_, err := v.Open(body)
	require.NoError(t, err)

	_, err = v.Open(body)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSignatureInvalid))
	assert.Equal(t, ReasonReplay, Reason(err))
}

func TestVerifier_EnforcedRejectsUnsigned(t *testing.T) {
	v := newTestVerifier(testKey)

	for _, body := range []string{
		`{"payload":{"payout":10,"betAmount":10,"reels":["a","b","c"],"isJackpot":false}}`,
		`{"payout":10,"betAmount":10,"reels":["a","b","c"],"isJackpot":false}`,
	} {
		_, err := v.Open([]byte(body))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
		assert.Equal(t, ReasonMissingFields, Reason(err))
	}
}

func TestVerifier_Malformed(t *testing.T) {
	v := newTestVerifier(testKey)

	for _, body := range []string{``, `[]`, `"x"`, `{"timestamp":"yesterday"}`} {
		_, err := v.Open([]byte(body))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "body %q", body)
	}
}

func TestVerifier_Disabled(t *testing.T) {
	v := newTestVerifier("")
	require.Equal(t, ModeDisabled, v.Mode())

	wrapped := []byte(`{"payload":{"productId":"coins_100"}}`)
	payload, err := v.Open(wrapped)
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":"coins_100"}`, string(payload))

	// Same body twice: no replay tracking without a key
	_, err = v.Open(wrapped)
	assert.NoError(t, err)

	bare := []byte(`{"productId":"coins_100"}`)
	payload, err = v.Open(bare)
	require.NoError(t, err)
	assert.JSONEq(t, string(bare), string(payload))

	// A signed envelope with a bogus signature is not checked
	payload, err = v.Open([]byte(`{"payload":{"productId":"x"},"signature":"nope","nonce":"n","timestamp":1}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":"x"}`, string(payload))
}

func TestReplayGuard_Expiry(t *testing.T) {
	g := NewReplayGuard(10, 20*time.Millisecond)
	require.NoError(t, g.Consume("n1"))
	require.Error(t, g.Consume("n1"))
	require.NoError(t, g.Consume("n2"))

	assert.Eventually(t, func() bool {
		return g.Consume("n1") == nil
	}, time.Second, 10*time.Millisecond)
}

func TestReplayGuard_BoundedMemory(t *testing.T) {
	g := NewReplayGuard(1000, time.Hour)
	leaktest.CheckNoMemoryLeak(t, 5.0, func() {
		for i := 0; i < 200_000; i++ {
			_ = g.Consume(fmt.Sprintf("nonce-%d", i))
		}
	})
}
