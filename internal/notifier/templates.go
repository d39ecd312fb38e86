package notifier

import (
	"bytes"
	"fmt"
	"text/template"
)

var templates = map[string]*template.Template{
	"welcome": template.Must(template.New("welcome").Parse(
		"Hi {{.Name}},\n\nYour pet directory account is ready. Sign in with {{.Email}} to list businesses, pets and reviews.\n",
	)),
	"password_changed": template.Must(template.New("password_changed").Parse(
		"Hi {{.Name}},\n\nYour password was just changed. If this wasn't you, contact support immediately.\n",
	)),
}

// renderTemplate produces the notification body shared by every backend,
// so a filesystem notification records exactly what SMTP would have sent.
func renderTemplate(templateName string, data any) (string, error) {
	tmpl, ok := templates[templateName]
	if !ok {
		return "", fmt.Errorf("unknown notification template %q", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", templateName, err)
	}

	return body.String(), nil
}
