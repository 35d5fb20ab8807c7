package constant

const (
	// Access tokens are short-lived. Development mode relaxes the window so
	// local clients are not forced to re-authenticate every twenty minutes.
	AccessTokenTTLSeconds    = 1200
	DevAccessTokenTTLSeconds = 86400

	// Refresh tokens effectively never expire client-side (~20 years); the
	// session row's valid flag is the real expiry.
	RefreshTokenTTLSeconds = 630720000

	RefreshTokenCookieName = "___refresh_token"
	// Lifetime given to the refresh cookie when clearing it on logout.
	LogoutCookieTTLMs = 5000

	MinPasswordLength = 8
)
