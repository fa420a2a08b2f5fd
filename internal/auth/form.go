package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	defaultUsernameField = "username"
	defaultPasswordField = "password"
)

// FormOptions configures the form credential parser.
type FormOptions struct {
	// UsernameField and PasswordField name the posted body fields the
	// parser reads. Default "username" and "password".
	UsernameField string
	PasswordField string
}

// NewForm builds a Method that reads credentials from posted form
// fields and hands them to v.
func NewForm(name string, v Validator, opts FormOptions) *Method {
	if opts.UsernameField == "" {
		opts.UsernameField = defaultUsernameField
	}
	if opts.PasswordField == "" {
		opts.PasswordField = defaultPasswordField
	}

	return &Method{
		Name:      name,
		Parser:    formParser(opts),
		Validator: v,
	}
}

func formParser(opts FormOptions) Parser {
	return func(c *gin.Context, m *Method) (*Result, error) {
		username := c.PostForm(opts.UsernameField)
		password := c.PostForm(opts.PasswordField)

		if username == "" || password == "" {
			return &Result{
				Message: "Username or Password not supplied",
				Code:    http.StatusUnauthorized,
			}, nil
		}

		return m.Validator(c.Request.Context(), username, password)
	}
}
