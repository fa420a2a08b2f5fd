package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kleinsmk/Pode/internal/models"
	"github.com/kleinsmk/Pode/internal/util"
)

const defaultAPIKeyHeader = "X-API-Key"

// APIKeyOptions configures the API key method.
type APIKeyOptions struct {
	// Header names the request header carrying the key. Defaults to
	// "X-API-Key".
	Header string
}

// NewAPIKey builds a Method whose Parser reads a single opaque key
// from a request header. The key rides in the username slot of the
// Validator; the password slot is unused. This is the extension
// contract: any parser producing a Result plugs into the same registry
// and middleware as the built-ins.
func NewAPIKey(name string, v Validator, opts APIKeyOptions) *Method {
	if opts.Header == "" {
		opts.Header = defaultAPIKeyHeader
	}

	return &Method{
		Name:      name,
		Parser:    apiKeyParser(opts),
		Validator: v,
	}
}

func apiKeyParser(opts APIKeyOptions) Parser {
	return func(c *gin.Context, m *Method) (*Result, error) {
		key := c.GetHeader(opts.Header)
		if key == "" {
			return &Result{
				Message: fmt.Sprintf("No %s header found", opts.Header),
				Code:    http.StatusUnauthorized,
			}, nil
		}

		return m.Validator(c.Request.Context(), key, "")
	}
}

// StaticKeyValidator validates an API key against a PBKDF2 hash fixed
// at startup. Comparison is constant-time.
type StaticKeyValidator struct {
	hash      string
	salt      string
	principal *models.PublicUser
}

// NewStaticKeyValidator creates a validator for a single pre-hashed
// key. principal is the identity attached to requests presenting it.
func NewStaticKeyValidator(hash, salt string, principal *models.PublicUser) *StaticKeyValidator {
	return &StaticKeyValidator{
		hash:      hash,
		salt:      salt,
		principal: principal,
	}
}

// Validate hashes the presented key and compares it to the configured hash.
func (p *StaticKeyValidator) Validate(ctx context.Context, key, _ string) (*Result, error) {
	computed := util.HashToken(key, p.salt)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(p.hash)) != 1 {
		return &Result{Message: "Invalid API key supplied"}, nil
	}
	return &Result{User: p.principal}, nil
}

// Name returns the validator name for logging.
func (p *StaticKeyValidator) Name() string {
	return "api_key"
}
