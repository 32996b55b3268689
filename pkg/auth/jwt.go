// Package auth issues and validates the JWTs used by vendika's two user
// classes: platform merchants and per-store customers. Customer tokens are
// store-scoped: the store id is baked into the claims, so a token minted
// for store A can never authenticate against store B.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/vendika/config"
)

// Claims holds the typed JWT payload.
type Claims struct {
	SubjectID uint   `json:"sub_id"`
	StoreID   uint   `json:"store_id,omitempty"` // set only on customer tokens
	Role      string `json:"role"`               // "merchant" | "customer"
	jwt.RegisteredClaims
}

const (
	RoleMerchant = "merchant"
	RoleCustomer = "customer"
)

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateCustomerToken creates a signed JWT scoped to one store's customer.
func GenerateCustomerToken(customerID, storeID uint) (string, error) {
	return sign(Claims{
		SubjectID: customerID,
		StoreID:   storeID,
		Role:      RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// GenerateMerchantToken creates a signed JWT for a platform merchant user.
func GenerateMerchantToken(userID uint) (string, error) {
	return sign(Claims{
		SubjectID: userID,
		Role:      RoleMerchant,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
