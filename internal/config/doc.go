// Package config loads the immutable process configuration from the
// environment.
//
// Configuration is read exactly once at startup and passed explicitly into
// the components that need it. An optional .env file is honored for local
// development; real environment variables always win.
package config
