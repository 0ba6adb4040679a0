package recovery

import "context"

// RecoverFunc is a function that runs the recovery pipeline on raw text and
// returns its Outcome. It is the base unit threaded through the middleware chain.
type RecoverFunc func(ctx context.Context, rawText string) Outcome

// Middleware intercepts and optionally transforms recovery runs and outcomes.
// Each Middleware receives the next RecoverFunc in the chain and returns a new
// RecoverFunc that wraps it. Middlewares are applied outermost-first: the first
// middleware in the slice is the outermost wrapper.
type Middleware func(next RecoverFunc) RecoverFunc

// buildChain constructs the linear middleware chain ending at base. Middlewares
// are applied in reverse order so that the first entry in the slice becomes the
// outermost wrapper, i.e. the first to execute on an incoming run.
func buildChain(base RecoverFunc, middlewares []Middleware) RecoverFunc {
	chain := base

	// Apply middlewares in reverse so that middlewares[0] is outermost.
	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}
