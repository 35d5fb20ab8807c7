package dto

// AuthResult is returned by signup and login. The refresh token travels in
// an httpOnly cookie, never in the JSON body.
type AuthResult struct {
	User                  *UserOutput `json:"user"`
	AccessToken           string      `json:"accessToken"`
	AccessTokenExpiresIn  int64       `json:"accessTokenExpiresIn"`
	RefreshToken          string      `json:"-"`
	RefreshTokenExpiresIn int64       `json:"refreshTokenExpiresIn"`
}

type RefreshResult struct {
	AccessToken           string `json:"accessToken"`
	AccessTokenExpiresIn  int64  `json:"accessTokenExpiresIn"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn"`
}
