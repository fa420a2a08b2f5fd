package auth

import "errors"

var (
	// Registry errors
	ErrDuplicateName     = errors.New("authentication method already registered")
	ErrInvalidDefinition = errors.New("invalid authentication method definition")
	ErrUndefinedAuth     = errors.New("authentication method not registered")

	// HTTP API errors
	ErrHTTPAPIConnection  = errors.New("failed to connect to authentication API")
	ErrHTTPAPIInvalidResp = errors.New("invalid response from authentication API")
)
