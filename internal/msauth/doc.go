// Package msauth drives the delegated OAuth2 authorization and token
// lifecycle against Azure AD.
//
// The interactive flow opens the system browser at the tenant's authorize
// endpoint and waits for a single callback on a short-lived local HTTP
// listener, exchanging the returned code for tokens with PKCE. The token
// lifecycle manager decides per call whether the stored credential is still
// usable, can be refreshed silently, or requires a fresh interactive
// authorization.
//
// All tokens are persisted through the credentials store; nothing is cached
// in memory across calls.
package msauth
