// README: Partner API authentication (bearer token exchange and caching).
package auth

import "errors"

// ErrNoToken is returned when the partner API did not issue a token.
var ErrNoToken = errors.New("partner api issued no token")

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"Token"`
}
