package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	defaultBasicScheme   = "Basic"
	defaultBasicEncoding = "ISO-8859-1"
)

// BasicOptions configures the Basic credential parser.
type BasicOptions struct {
	// Scheme is the expected Authorization scheme token, compared
	// case-insensitively. Defaults to "Basic".
	Scheme string

	// Encoding is the IANA name of the character encoding used to
	// interpret the base64-decoded credentials. Defaults to "ISO-8859-1"
	// per RFC 7617.
	Encoding string

	// Realm, when set, is included in the WWW-Authenticate challenge.
	Realm string
}

// NewBasic builds a Method that reads credentials from the
// Authorization request header and hands them to v.
func NewBasic(name string, v Validator, opts BasicOptions) *Method {
	if opts.Scheme == "" {
		opts.Scheme = defaultBasicScheme
	}
	if opts.Encoding == "" {
		opts.Encoding = defaultBasicEncoding
	}

	challenge := opts.Scheme
	if opts.Realm != "" {
		challenge = fmt.Sprintf("%s realm=%q", opts.Scheme, opts.Realm)
	}

	return &Method{
		Name:      name,
		Parser:    basicParser(opts),
		Validator: v,
		Challenge: challenge,
	}
}

// basicParser returns the Parser bound to opts. Every malformed-header
// outcome is an expected failure Result; errors are reserved for the
// Validator blowing up.
func basicParser(opts BasicOptions) Parser {
	return func(c *gin.Context, m *Method) (*Result, error) {
		header := c.GetHeader("Authorization")
		if header == "" {
			return &Result{
				Message: "No Authorization header found",
				Code:    http.StatusUnauthorized,
			}, nil
		}

		parts := strings.Fields(header)
		if len(parts) == 0 || !strings.EqualFold(parts[0], opts.Scheme) {
			// Code stays unset; the middleware defaults failures to 401.
			return &Result{
				Message: fmt.Sprintf("Header is not %s Authorization", opts.Scheme),
			}, nil
		}

		if len(parts) < 2 {
			return &Result{
				Message: "Invalid Authorization header",
				Code:    http.StatusBadRequest,
			}, nil
		}

		enc, err := lookupEncoding(opts.Encoding)
		if err != nil {
			return &Result{
				Message: fmt.Sprintf("Invalid encoding specified: %s", opts.Encoding),
				Code:    http.StatusBadRequest,
			}, nil
		}

		raw, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return &Result{
				Message: "Invalid Authorization header",
				Code:    http.StatusBadRequest,
			}, nil
		}

		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return &Result{
				Message: "Invalid Authorization header",
				Code:    http.StatusBadRequest,
			}, nil
		}

		// Split at the first colon only; passwords may contain colons.
		username, password, found := strings.Cut(string(decoded), ":")
		if !found {
			return &Result{
				Message: "Invalid Authorization header",
				Code:    http.StatusBadRequest,
			}, nil
		}

		return m.Validator(c.Request.Context(), username, password)
	}
}

// lookupEncoding resolves an IANA charset name to a decoder.
func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	// ianaindex returns a nil Encoding for names it recognizes but
	// cannot decode; treat those the same as unknown names.
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}
