package auth

import (
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a staff JWT.
type AccessTokenPayload struct {
	UserID       string
	Role         enums.MemberRole
	RestaurantID string
}

// AccessTokenClaims represents the typed JWT the restaurant backend issues to staff.
type AccessTokenClaims struct {
	UserID       string           `json:"user_id"`
	Role         enums.MemberRole `json:"role"`
	RestaurantID string           `json:"restaurant_id,omitempty"`
	jwt.RegisteredClaims
}
