// Package llm provides middleware that wraps an LLMClient with
// cross-cutting behavior. Middlewares compose in decorator style; the last
// middleware in the chain is the outermost wrapper.
package llm

import llmclient "illustrator/internal/llm/client"

// Middleware wraps an LLMClient with additional behavior.
type Middleware func(llmclient.LLMClient) llmclient.LLMClient

// Chain applies middlewares in order around base.
func Chain(base llmclient.LLMClient, mws ...Middleware) llmclient.LLMClient {
	cli := base
	for _, mw := range mws {
		cli = mw(cli)
	}
	return cli
}
