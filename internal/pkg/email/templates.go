package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateManager renders the built-in email templates.
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	builtin := map[string]string{
		"notification": notificationTemplate,
		"low_stock":    lowStockTemplate,
	}

	for name, text := range builtin {
		tpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return tm, nil
}

// Render executes a template with the given data.
func (tm *TemplateManager) Render(templateName string, data interface{}) (string, error) {
	tpl, exists := tm.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}

const (
	notificationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
</head>
<body>
    <h2>{{.Subject}}</h2>
    <p>{{.Message}}</p>
    {{if .ActionURL}}
    <a href="{{.ActionURL}}" style="background-color: #28a745; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">{{.ActionText}}</a>
    {{end}}
</body>
</html>`

	lowStockTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Low stock alert</title>
</head>
<body>
    <h2>Low stock alert</h2>
    <p>Hello, {{.UserName}}!</p>
    <p>The following product has fallen to or below its minimum stock level:</p>
    <div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px;">
        <h3>{{.ProductName}}</h3>
        {{if .SKU}}<p><strong>SKU:</strong> {{.SKU}}</p>{{end}}
        <p><strong>Current quantity:</strong> {{.Quantity}}</p>
        <p><strong>Minimum threshold:</strong> {{.Threshold}}</p>
    </div>
    <p>Restock soon to avoid missed orders.</p>
    <a href="{{.ListingURL}}" style="background-color: #dc3545; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">View low-stock products</a>
</body>
</html>`
)
