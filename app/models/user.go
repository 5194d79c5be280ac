// Package models holds the FarmXChain backend's data shapes and the request
// bodies the client sends. Money and weights are shopspring decimals so
// totals never pick up float rounding.
package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// User is an account on the marketplace.
type User struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          Role            `json:"role"`
	Status        UserStatus      `json:"status,omitempty"`
	PhoneNumber   string          `json:"phoneNumber,omitempty"`
	IsVerified    bool            `json:"isVerified"`
	WalletAddress string          `json:"walletAddress,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
	PostalCode    string          `json:"postalCode,omitempty"`
	CreatedAt     Timestamp       `json:"createdAt"`
	UpdatedAt     Timestamp       `json:"updatedAt"`
	LastLogin     Timestamp       `json:"lastLogin"`
	Balance       decimal.Decimal `json:"balance"`
}

// DisplayName returns the name, falling back to the email for identities
// recovered from a token.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// IDString is the id as a path segment.
func (u *User) IDString() string { return strconv.FormatInt(u.ID, 10) }

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType,omitempty"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
	User      *User  `json:"user"`
}

// RegisterRequest is the body of POST /auth/register.
// Administrators cannot self-register.
type RegisterRequest struct {
	Name          string `json:"name"                    validate:"required,min=2,max=100"`
	Email         string `json:"email"                   validate:"required,email"`
	Password      string `json:"password"                validate:"required,min=6"`
	Role          Role   `json:"role"                    validate:"required,oneof=FARMER DISTRIBUTOR RETAILER CONSUMER"`
	PhoneNumber   string `json:"phoneNumber,omitempty"   validate:"omitempty,min=10,max=15"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
}
