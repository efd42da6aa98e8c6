package domain

import "errors"

// Sentinel errors for the account domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates no user exists for the given key.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidStateToken indicates the callback's state parameter did not
	// match the anti-forgery token stored in the session.
	ErrInvalidStateToken = errors.New("invalid state parameter")

	// ErrCodeExchangeFailed indicates the authorization code could not be
	// upgraded into provider credentials.
	ErrCodeExchangeFailed = errors.New("failed to upgrade the authorization code")

	// ErrTokenUserMismatch indicates the token's subject does not match the
	// user id reported by the provider's token-info endpoint.
	ErrTokenUserMismatch = errors.New("token's user ID doesn't match given user ID")

	// ErrTokenClientMismatch indicates the token was issued to a different
	// client than this application.
	ErrTokenClientMismatch = errors.New("token's client ID does not match app's")

	// ErrTokenIntrospection indicates the provider reported an error during
	// token introspection. An upstream failure, surfaced as a server error.
	ErrTokenIntrospection = errors.New("token introspection failed")

	// ErrNotConnected indicates a disconnect was requested with no provider
	// credentials in the session.
	ErrNotConnected = errors.New("current user not connected")

	// ErrRevokeFailed indicates the provider refused to revoke the token.
	ErrRevokeFailed = errors.New("failed to revoke token for given user")
)
