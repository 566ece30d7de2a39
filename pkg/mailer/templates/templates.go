package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

// ---- Template names ----

const (
	Welcome = "welcome"
)

type source struct {
	subject string
	text    string
	html    string
}

var sources = map[string]source{
	Welcome: {
		subject: `Welcome to {{ .AppName | default "DevConnector" }}, {{ .Name | default "developer" }}`,
		text: `Hi {{ .Name | default "there" }},

Your account is ready. Create your developer profile to list your skills,
experience and education, and link your GitHub repositories.

The {{ .AppName | default "DevConnector" }} team
`,
		html: `<!doctype html>
<html>
  <body style="font-family:Arial,sans-serif;color:#333">
    <h2>Hi {{ .Name | default "there" }},</h2>
    <p>Your account is ready. Create your developer profile to list your skills,
       experience and education, and link your GitHub repositories.</p>
    <p style="color:#888">The {{ .AppName | default "DevConnector" }} team · {{ now.Year }}</p>
  </body>
</html>
`,
	},
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

func renderText(name, src string, data any) (string, error) {
	tpl, err := texttpl.New(name).Funcs(textFuncMap).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse text %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func renderHTML(name, src string, data any) (string, error) {
	tpl, err := htmpl.New(name).Funcs(htmlFuncMap).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse html %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render renders subject, text, and html for the named template.
func Render(name string, data map[string]any) (subject string, text string, html string, err error) {
	src, ok := sources[strings.ToLower(name)]
	if !ok {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}
	if subject, err = renderText(name+".subject", src.subject, data); err != nil {
		return "", "", "", err
	}
	if text, err = renderText(name+".text", src.text, data); err != nil {
		return "", "", "", err
	}
	if html, err = renderHTML(name+".html", src.html, data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
