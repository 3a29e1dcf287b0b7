// Package mailer dispatches transactional email. The contest core only
// depends on the Mailer interface; the SES implementation lives here so
// the whole surface stays swappable in tests.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// Mailer sends one logical email, identified by a template name plus a
// context map. Implementations must render every part of the template
// before attempting any send; a partial send must not occur.
type Mailer interface {
	Send(ctx context.Context, to string, template string, data map[string]any) error
}

// Email is a fully rendered message: all three logical parts of a
// template (subject, plain text body, HTML body).
type Email struct {
	Subject string
	Text    string
	HTML    string
}

// Render renders the named template with data. It fails if any of the
// three parts fails, before anything is sent anywhere.
func Render(name string, data map[string]any) (*Email, error) {
	t, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("mailer: unknown template %q", name)
	}

	subject, err := renderText(t.subject, data)
	if err != nil {
		return nil, fmt.Errorf("mailer: render %s subject -> %w", name, err)
	}
	text, err := renderText(t.text, data)
	if err != nil {
		return nil, fmt.Errorf("mailer: render %s text -> %w", name, err)
	}
	html, err := renderHTML(t.html, data)
	if err != nil {
		return nil, fmt.Errorf("mailer: render %s html -> %w", name, err)
	}

	return &Email{Subject: subject, Text: text, HTML: html}, nil
}

func renderText(src string, data map[string]any) (string, error) {
	t, err := texttemplate.New("").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(src string, data map[string]any) (string, error) {
	t, err := htmltemplate.New("").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
