package sessiontoken

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-0123456789"
	testIssuer = "tasklight"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testSecret, testIssuer)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	t.Parallel()

	c, err := NewCodec("", testIssuer)
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	token, err := c.Encode("account-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "account-42", got)
}

func TestCodec_Encode_RequiresAccountID(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	_, err := c.Encode("")
	require.Error(t, err)
}

func TestCodec_Decode_Garbage(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	for _, raw := range []string{"", "garbage", "a.b.c", "....."} {
		_, err := c.Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestCodec_Decode_WrongKey(t *testing.T) {
	t.Parallel()

	other, err := NewCodec("a-different-secret", testIssuer)
	require.NoError(t, err)
	token, err := other.Encode("account-42")
	require.NoError(t, err)

	_, err = newTestCodec(t).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_WrongIssuer(t *testing.T) {
	t.Parallel()

	other, err := NewCodec(testSecret, "someone-else")
	require.NoError(t, err)
	token, err := other.Encode("account-42")
	require.NoError(t, err)

	_, err = newTestCodec(t).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_NoneAlgorithmRejected(t *testing.T) {
	t.Parallel()

	// An unsigned token claiming alg "none" must fail closed.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "account-42",
		Issuer:  testIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestCodec(t).Decode(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_MissingSubject(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: testIssuer,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestCodec(t).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
