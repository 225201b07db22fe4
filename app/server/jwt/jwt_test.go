package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestNew_EmptyKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestSignAndParse(t *testing.T) {
	j, err := New("super-secret")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Unix()
	token, err := j.SignToken(&User{ID: 42, Key: "key-1", Expires: expires})
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, "key-1", user.Key)
	assert.Equal(t, expires, user.Expires)
}

func TestParseUser_Rejects(t *testing.T) {
	j, err := New("right-secret")
	require.NoError(t, err)
	other, err := New("wrong-secret")
	require.NoError(t, err)

	valid := time.Now().Add(time.Hour).Unix()

	expired, err := j.SignToken(&User{ID: 1, Key: "k", Expires: time.Now().Add(-time.Minute).Unix()})
	require.NoError(t, err)

	wrongSecret, err := other.SignToken(&User{ID: 1, Key: "k", Expires: valid})
	require.NoError(t, err)

	noKey, err := j.SignToken(&User{ID: 1, Expires: valid})
	require.NoError(t, err)

	noneAlg, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"id": 1, "jti": "k", "exp": valid,
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"id": 1, "jti": "k",
	}).SignedString([]byte("right-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"malformed":    "not.a.jwt",
		"expired":      expired,
		"wrong secret": wrongSecret,
		"missing jti":  noKey,
		"alg none":     noneAlg,
		"missing exp":  noExp,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := j.ParseUser(token)
			assert.Error(t, err)
		})
	}
}
