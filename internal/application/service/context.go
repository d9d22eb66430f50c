package service

import (
	"context"

	"github.com/google/uuid"
)

// Actor is who is performing a ledger operation, as recorded in the audit trail
type Actor struct {
	ID   *uuid.UUID
	Name string
	IP   string
}

type actorKey struct{}

// WithActor attaches the acting user to ctx
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor on ctx, or the zero Actor for system work
func ActorFrom(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}
