// Package templates holds the embedded HTML pages served by the web
// handlers. Templates are parsed once at startup and attached to the
// gin engine via SetHTMLTemplate.
package templates

import (
	"embed"
	"html/template"
)

//go:embed html/*.html
var files embed.FS

// Load parses the embedded page templates. It panics on a malformed
// template, which only happens when the binary itself is broken.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "html/*.html"))
}

// LoginPageProps feeds login.html.
type LoginPageProps struct {
	CSRFToken string
	Error     string
	Redirect  string
}

// PortalPageProps feeds portal.html.
type PortalPageProps struct {
	Username   string
	FullName   string
	Email      string
	Role       string
	AuthSource string
	LoginTime  string
}

// ErrorPageProps feeds error.html.
type ErrorPageProps struct {
	Status  int
	Message string
}
