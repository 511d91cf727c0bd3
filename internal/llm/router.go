package llm

import "strings"

// DefaultModel is used when the requested identifier matches no route.
const DefaultModel = "gpt-5"

// route maps a model-identifier prefix to a provider. The table is a fixed
// finite mapping; adding a provider means adding a row, not a branch.
type route struct {
	prefix   string
	provider Provider
}

type Router struct {
	routes   []route
	fallback Provider
}

func NewRouter(openai, anthropic Provider) *Router {
	return &Router{
		routes: []route{
			{prefix: "gpt", provider: openai},
			{prefix: "claude", provider: anthropic},
		},
		fallback: openai,
	}
}

// Resolve picks the provider for a requested model identifier. Unrecognized
// identifiers fall back to the default provider and model.
func (r *Router) Resolve(model string) (Provider, string) {
	for _, rt := range r.routes {
		if strings.HasPrefix(model, rt.prefix) {
			return rt.provider, model
		}
	}
	return r.fallback, DefaultModel
}
