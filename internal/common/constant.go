// Package common contains shared constants and sentinel errors used across
// fintrack components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token
// on record API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value inside the authorization header.
const BearerPrefix = "Bearer "
