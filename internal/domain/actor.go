package domain

import "context"

// Role distinguishes staff from member callers.
type Role string

const (
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
	RoleSystem Role = "system"
)

// Actor is the identity and tenant scope a caller operates under. The engine
// trusts the actor it is given; authentication happens upstream. Every
// persisted row carries the actor's tenant id.
type Actor struct {
	UserID   string
	MemberID string
	TenantID string
	Role     Role
}

// IsStaff reports whether the actor may operate on any member's account
// within its tenant.
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleSystem
}

type actorContextKey struct{}

// ActorToContext returns a context carrying the actor.
func ActorToContext(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the actor from the context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok
}
