package graph

import "context"

// TokenSource yields an access token usable right now. Implemented by the
// msauth token lifecycle manager; domain clients depend on this interface
// so tests can substitute a fixed token.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticTokenSource returns the same token on every call. Useful in tests.
type StaticTokenSource string

func (s StaticTokenSource) AccessToken(context.Context) (string, error) {
	return string(s), nil
}
