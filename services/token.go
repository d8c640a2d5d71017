package services

import (
	"time"

	"main/model"
	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT mints a signed access token carrying the user's ID and
// role so the admin gate never needs a store lookup.
func GenerateJWT(userID string, role model.Role) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"iss":     utils.JWTIssuer,
		"iat":     now.Unix(),
		"exp":     expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}
