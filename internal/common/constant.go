package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token
// on protected requests.
const AuthorizationHeaderName = "Authorization"

// AuthCookieName is the cookie used by the optional cookie token transport.
const AuthCookieName = "access_token"
