package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMissingHeader(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	c := newParserContext(nil)
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "No Authorization header found", result.Message)
	assert.Equal(t, http.StatusUnauthorized, result.Code)
	assert.False(t, captured.called)
}

func TestBasicWrongScheme(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	c := newParserContext(map[string]string{"Authorization": "Bearer sometoken"})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Header is not Basic Authorization", result.Message)
	// Scheme mismatch leaves the status decision to the middleware default.
	assert.Equal(t, 0, result.Code)
	assert.False(t, captured.called)
}

func TestBasicSchemeCaseInsensitive(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	encoded := base64.StdEncoding.EncodeToString([]byte("user:pass"))
	c := newParserContext(map[string]string{"Authorization": "bASiC " + encoded})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "user", captured.username)
	assert.Equal(t, "pass", captured.password)
}

func TestBasicMissingPayload(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	c := newParserContext(map[string]string{"Authorization": "Basic"})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Invalid Authorization header", result.Message)
	assert.Equal(t, http.StatusBadRequest, result.Code)
	assert.False(t, captured.called)
}

func TestBasicMalformedBase64(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	c := newParserContext(map[string]string{"Authorization": "Basic !!!not-base64!!!"})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Invalid Authorization header", result.Message)
	assert.Equal(t, http.StatusBadRequest, result.Code)
	assert.False(t, captured.called)
}

func TestBasicNoColonInCredentials(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	encoded := base64.StdEncoding.EncodeToString([]byte("userpass"))
	c := newParserContext(map[string]string{"Authorization": "Basic " + encoded})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Invalid Authorization header", result.Message)
	assert.Equal(t, http.StatusBadRequest, result.Code)
	assert.False(t, captured.called)
}

func TestBasicValidCredentials(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	c := newParserContext(map[string]string{"Authorization": basicHeader("admin:secret123")})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	require.True(t, result.OK())
	assert.True(t, captured.called)
	assert.Equal(t, "admin", captured.username)
	assert.Equal(t, "secret123", captured.password)
}

func TestBasicPasswordKeepsColons(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	// Only the first colon separates username from password.
	c := newParserContext(map[string]string{"Authorization": basicHeader("admin:se:cr:et")})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "admin", captured.username)
	assert.Equal(t, "se:cr:et", captured.password)
}

func TestBasicCustomScheme(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{Scheme: "Token"})

	c := newParserContext(map[string]string{"Authorization": basicHeader("user:pass")})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Header is not Token Authorization", result.Message)

	encoded := base64.StdEncoding.EncodeToString([]byte("user:pass"))
	c = newParserContext(map[string]string{"Authorization": "Token " + encoded})
	result, err = m.Parser(c, m)

	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "user", captured.username)
}

func TestBasicUnknownEncoding(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{Encoding: "klingon"})

	// The encoding is resolved before the payload is decoded, so even a
	// garbage payload reports the encoding problem.
	c := newParserContext(map[string]string{"Authorization": "Basic !!!not-base64!!!"})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Invalid encoding specified: klingon", result.Message)
	assert.Equal(t, http.StatusBadRequest, result.Code)
	assert.False(t, captured.called)
}

func TestBasicLatin1Decoding(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{})

	// 0xFC is ü in ISO-8859-1, the default per RFC 7617.
	raw := []byte{'f', 0xFC, 'r', ':', 'p', 'a', 's', 's'}
	encoded := base64.StdEncoding.EncodeToString(raw)
	c := newParserContext(map[string]string{"Authorization": "Basic " + encoded})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "für", captured.username)
	assert.Equal(t, "pass", captured.password)
}

func TestBasicUTF8Encoding(t *testing.T) {
	captured := &capturedCreds{}
	m := NewBasic("basic", capturingValidator(captured), BasicOptions{Encoding: "UTF-8"})

	c := newParserContext(map[string]string{"Authorization": basicHeader("héllo:wörld")})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, "héllo", captured.username)
	assert.Equal(t, "wörld", captured.password)
}

func TestBasicChallenge(t *testing.T) {
	m := NewBasic("basic", capturingValidator(&capturedCreds{}), BasicOptions{})
	assert.Equal(t, "Basic", m.Challenge)

	m = NewBasic("basic", capturingValidator(&capturedCreds{}), BasicOptions{Realm: "Pode"})
	assert.Equal(t, `Basic realm="Pode"`, m.Challenge)

	m = NewBasic("basic", capturingValidator(&capturedCreds{}), BasicOptions{
		Scheme: "Token",
		Realm:  "internal",
	})
	assert.Equal(t, `Token realm="internal"`, m.Challenge)
}

func TestBasicValidatorFailurePassesThrough(t *testing.T) {
	rejecting := func(_ context.Context, _, _ string) (*Result, error) {
		return &Result{Message: "Invalid credentials supplied"}, nil
	}
	m := NewBasic("basic", rejecting, BasicOptions{})

	c := newParserContext(map[string]string{"Authorization": basicHeader("user:wrong")})
	result, err := m.Parser(c, m)

	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Equal(t, "Invalid credentials supplied", result.Message)
	assert.Equal(t, 0, result.Code)
}
