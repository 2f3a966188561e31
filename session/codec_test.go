package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	token, err := codec.Encode("abc-123")
	require.NoError(t, err)

	id, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	token, err := NewCodec("other", time.Hour).Encode("abc-123")
	require.NoError(t, err)

	_, err = NewCodec("secret", time.Hour).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecRejectsExpired(t *testing.T) {
	token, err := NewCodec("secret", -time.Minute).Encode("abc-123")
	require.NoError(t, err)

	_, err = NewCodec("secret", time.Hour).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecRejectsUnsignedAndGarbage(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": "abc"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Decode("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodecRejectsMissingSessionID(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	raw, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewCodec("secret", time.Hour).Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
