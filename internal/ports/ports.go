// Package ports declares the external collaborators the gateway consumes.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import "context"

// Completer generates text for a fully rendered prompt.
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns up to k policy snippets ranked by relevance to query.
// An empty result is not an error.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]string, error)
}
