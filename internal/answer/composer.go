// Package answer renders the per-intent prompt and delegates generation.
package answer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"HRPolicyGateway/internal/facts"
	"HRPolicyGateway/internal/models"
	"HRPolicyGateway/internal/ports"
)

var ErrNoTemplate = errors.New("no prompt template for intent")

var templates = map[models.Intent]*template.Template{
	models.IntentPolicy: template.Must(template.New("policy").Parse(
		"Answer using ONLY the policy context below. If missing, say you don't know.\n\n" +
			"{{.Context}}\n\n" +
			"{{if .Derived}}Computed values:\n{{.Derived}}\n\n{{end}}" +
			"Q: {{.Question}}")),
	models.IntentHR: template.Must(template.New("hr").Parse(
		"Answer using ONLY these HR facts; do not infer or fabricate.\n" +
			"User: {{.User}}\n" +
			"Facts:\n{{.Facts}}\n\n" +
			"{{if .Derived}}Computed values:\n{{.Derived}}\n\n{{end}}" +
			"Q: {{.Question}}")),
	models.IntentHybrid: template.Must(template.New("hybrid").Parse(
		"Combine HR facts (for personal details) and policy context (for rules). " +
			"If either is missing, say so explicitly.\n\n" +
			"User: {{.User}}\n" +
			"HR facts:\n{{.Facts}}\n\n" +
			"Policy:\n{{.Context}}\n\n" +
			"{{if .Derived}}Computed values:\n{{.Derived}}\nCite the multiplier explicitly (e.g., 1.25x).\n\n{{end}}" +
			"Q: {{.Question}}")),
}

// Request carries everything one answer may draw on. Composer decides which
// parts reach the prompt based on Intent.
type Request struct {
	Intent   models.Intent
	User     string
	Question string
	Snippets []string
	Facts    facts.Bag
	Derived  map[string]string
}

type Composer struct {
	completer ports.Completer
}

func NewComposer(completer ports.Completer) *Composer {
	return &Composer{completer: completer}
}

// Prompt renders the template for req.Intent. Policy snippets are only
// supplied to policy and hybrid prompts, facts only to hr and hybrid.
func (c *Composer) Prompt(req Request) (string, error) {
	tmpl, ok := templates[req.Intent]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoTemplate, req.Intent)
	}

	data := struct {
		User, Question, Context, Facts, Derived string
	}{
		User:     req.User,
		Question: req.Question,
		Derived:  renderDerived(req.Derived),
	}
	if req.Intent == models.IntentPolicy || req.Intent == models.IntentHybrid {
		data.Context = renderContext(req.Snippets)
	}
	if req.Intent == models.IntentHR || req.Intent == models.IntentHybrid {
		data.Facts = renderFacts(req.Facts)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", req.Intent, err)
	}
	return buf.String(), nil
}

// Compose makes exactly one generation call and returns its text unmodified.
func (c *Composer) Compose(ctx context.Context, req Request) (string, error) {
	prompt, err := c.Prompt(req)
	if err != nil {
		return "", err
	}
	return c.completer.Generate(ctx, prompt)
}

func renderContext(snippets []string) string {
	if len(snippets) == 0 {
		return "(no policy context found)"
	}
	return strings.Join(snippets, "\n\n")
}

func renderFacts(bag facts.Bag) string {
	if len(bag) == 0 {
		return "(no facts available)"
	}
	var b strings.Builder
	for i, f := range bag {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %v", f.Field, f.Value)
	}
	return b.String()
}

func renderDerived(derived map[string]string) string {
	if len(derived) == 0 {
		return ""
	}
	keys := make([]string, 0, len(derived))
	for k := range derived {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", k, derived[k])
	}
	return b.String()
}
