package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

const testKey = "test-signing-key"

var fixedNow = time.UnixMilli(1700000000000)

func newTestSigner(key string) *Signer {
	s := NewSigner(key)
	s.now = func() time.Time { return fixedNow }
	s.nonce = func() string { return "0123456789abcdef0123456789abcdef" }
	return s
}

func samplePayload() domain.SpinRequest {
	return domain.SpinRequest{
		MachineID:     "classic",
		Reels:         [3]domain.Symbol{"seven", "seven", "seven"},
		Payout:        1000,
		JackpotWin:    5000,
		BetAmount:     10,
		BetMultiplier: 1,
		IsJackpot:     true,
		Timestamp:     fixedNow.UnixMilli(),
	}
}

func TestSignVerify_RoundTrip(t *testing.T) {
	s := newTestSigner(testKey)

	env, err := s.Sign(samplePayload())
	require.NoError(t, err)

	assert.Equal(t, fixedNow.UnixMilli(), env.Timestamp)
	assert.Len(t, env.Signature, 64)
	assert.True(t, s.Verify(env))
	assert.NoError(t, Verify(env, []byte(testKey), fixedNow, DefaultMaxAge))
}

func TestSign_SignatureFormula(t *testing.T) {
	s := newTestSigner(testKey)
	payload := []byte(`{"productId":"coins_100"}`)

	env, err := s.SignRaw(payload)
	require.NoError(t, err)

	digest := sha256.Sum256(payload)
	mac := hmac.New(sha256.New, []byte(testKey))
	mac.Write([]byte(strconv.FormatInt(env.Timestamp, 10) + "." + env.Nonce + "." + hex.EncodeToString(digest[:])))

	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), env.Signature)
	assert.Equal(t, hex.EncodeToString(digest[:]), PayloadHash(payload))
}

func TestVerify_DetectsTampering(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env *domain.SignedEnvelope)
		wantErr error
	}{
		{
			name: "payload byte",
			mutate: func(env *domain.SignedEnvelope) {
				env.Payload = json.RawMessage(replaceOnce(string(env.Payload), `"payout":1000`, `"payout":9000`))
			},
			wantErr: domain.ErrSignatureInvalid,
		},
		{
			name: "nonce",
			mutate: func(env *domain.SignedEnvelope) {
				env.Nonce = "f" + env.Nonce[1:]
			},
			wantErr: domain.ErrSignatureInvalid,
		},
		{
			name: "signature",
			mutate: func(env *domain.SignedEnvelope) {
				b := []byte(env.Signature)
				if b[0] == 'a' {
					b[0] = 'b'
				} else {
					b[0] = 'a'
				}
				env.Signature = string(b)
			},
			wantErr: domain.ErrSignatureInvalid,
		},
		{
			name: "timestamp",
			mutate: func(env *domain.SignedEnvelope) {
				env.Timestamp++
			},
			wantErr: domain.ErrSignatureInvalid,
		},
		{
			name: "missing signature",
			mutate: func(env *domain.SignedEnvelope) {
				env.Signature = ""
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing nonce",
			mutate: func(env *domain.SignedEnvelope) {
				env.Nonce = ""
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing timestamp",
			mutate: func(env *domain.SignedEnvelope) {
				env.Timestamp = 0
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "missing payload",
			mutate: func(env *domain.SignedEnvelope) {
				env.Payload = nil
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSigner(testKey)
			env, err := s.Sign(samplePayload())
			require.NoError(t, err)

			tt.mutate(env)

			err = Verify(env, []byte(testKey), fixedNow, DefaultMaxAge)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.False(t, s.Verify(env))
		})
	}
}

func TestVerify_TTL(t *testing.T) {
	s := newTestSigner(testKey)
	env, err := s.Sign(samplePayload())
	require.NoError(t, err)

	key := []byte(testKey)
	assert.NoError(t, Verify(env, key, fixedNow.Add(DefaultMaxAge), DefaultMaxAge), "boundary is inclusive")
	assert.NoError(t, Verify(env, key, fixedNow.Add(-DefaultMaxAge), DefaultMaxAge))

	err = Verify(env, key, fixedNow.Add(DefaultMaxAge+time.Millisecond), DefaultMaxAge)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, ReasonExpired, Reason(err))

	err = Verify(env, key, fixedNow.Add(-DefaultMaxAge-time.Millisecond), DefaultMaxAge)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "timestamps from the future expire too")
}

func TestVerify_WrongKey(t *testing.T) {
	env, err := newTestSigner(testKey).Sign(samplePayload())
	require.NoError(t, err)

	err = Verify(env, []byte("other-key"), fixedNow, DefaultMaxAge)
	assert.True(t, errors.Is(err, domain.ErrSignatureInvalid))
	assert.Equal(t, ReasonMismatch, Reason(err))
}

func TestVerify_WhitespaceInsensitive(t *testing.T) {
	env, err := newTestSigner(testKey).SignRaw([]byte(`{"productId":"coins_100","platform":"ios"}`))
	require.NoError(t, err)

	env.Payload = json.RawMessage("{\n  \"productId\": \"coins_100\",\n  \"platform\": \"ios\"\n}")
	assert.NoError(t, Verify(env, []byte(testKey), fixedNow, DefaultMaxAge))
}

func TestNewSigner_DevMode(t *testing.T) {
	dev := newTestSigner("")
	assert.Equal(t, ModeDisabled, dev.Mode())

	env, err := dev.Sign(samplePayload())
	require.NoError(t, err)
	assert.NoError(t, Verify(env, []byte(DevSigningKey), fixedNow, DefaultMaxAge))

	assert.Equal(t, ModeEnforced, NewSigner(testKey).Mode())
}

func TestSigner_UniqueNonces(t *testing.T) {
	s := NewSigner(testKey)
	a, err := s.Sign(samplePayload())
	require.NoError(t, err)
	b, err := s.Sign(samplePayload())
	require.NoError(t, err)

	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.Len(t, a.Nonce, 32)
}

func replaceOnce(s, old, new string) string {
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return s[:i] + new + s[i+len(old):]
		}
	}
	panic("substring not found: " + old)
}
