package jwthandling

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TOKEN_ISSUER = "expression-mongo"

// ManagementUserClaims is what a token for editing ranking formulas encodes.
// The user ID is stored as subject.
type ManagementUserClaims struct {
	InstanceID string `json:"instance_id,omitempty"`
	IsAdmin    bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewManagementUserToken(expiresIn time.Duration, userID string, instanceID string, isAdmin bool, secretKey string) (tokenString string, err error) {
	if secretKey == "" {
		return "", errors.New("sign key missing")
	}
	now := time.Now()
	claims := ManagementUserClaims{
		InstanceID: instanceID,
		IsAdmin:    isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    TOKEN_ISSUER,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func ValidateManagementUserToken(tokenString string, secretKey string) (claims *ManagementUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&ManagementUserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TOKEN_ISSUER),
	)
	if token == nil {
		return nil, false, err
	}
	claims, valid = token.Claims.(*ManagementUserClaims)
	valid = valid && token.Valid && err == nil
	return claims, valid, err
}
