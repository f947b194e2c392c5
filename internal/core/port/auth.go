package port

import "context"

type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Authorizer is the capability check hook at the API boundary. The default
// implementation allows everything; authentication is out of scope here.
type Authorizer interface {
	Authorize(ctx context.Context, action Action, resource string) error
}

type AllowAll struct{}

func (AllowAll) Authorize(ctx context.Context, action Action, resource string) error {
	return nil
}
