// Package reqid carries a per-request correlation id through
// context.Context so log lines from different layers can be joined up.
package reqid

import "context"

type ctxKey struct{}

// With returns a context carrying the request id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the request id from ctx, or "" when none was attached.
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
