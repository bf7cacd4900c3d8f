package audit

import "context"

// Anonymous is the actor recorded when no user is signed in.
const Anonymous = "anonymous"

type actorKey struct{}

// WithActor attaches the signed-in user id to ctx.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the user id attached to ctx, or Anonymous.
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok && id != "" {
		return id
	}
	return Anonymous
}
