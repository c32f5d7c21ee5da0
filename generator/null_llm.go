package generator

import "context"

// NullBackend is used when no credentials are configured. Every call fails with
// ErrBackendDisabled so that generation runs entirely on the fallback templates.
type NullBackend struct{}

func (NullBackend) Name() string { return "none" }

func (NullBackend) Complete(context.Context, Prompt) (string, error) {
	return "", ErrBackendDisabled
}
