package dummygateway

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/darasa/console/core"
	"github.com/darasa/console/core/identity"
)

// account is a registered principal with its password hash.
type account struct {
	ident identity.Identity
	hash  []byte
}

// Service is an in-memory Gateway for DEV runs and tests. It checks passwords
// with bcrypt and mints HS256 tokens so the rest of the stack sees
// realistic-looking material.
type Service struct {
	appName   string
	secretKey []byte

	mu       sync.Mutex
	accounts map[string]*account // by username
}

var _ identity.Gateway = (*Service)(nil)

func NewService(appName string, secretKey []byte) *Service {
	return &Service{
		appName:   appName,
		secretKey: secretKey,
		accounts:  make(map[string]*account),
	}
}

// Seed adds an account without going through Register; tests and DEV
// bootstrap use it.
func (svc *Service) Seed(ident identity.Identity, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if ident.ID == "" {
		ident.ID = uuid.NewString()
	}
	svc.accounts[ident.Username] = &account{ident: ident, hash: hash}
	return nil
}

func (svc *Service) Authenticate(_ context.Context, creds identity.Credentials) (identity.Auth, error) {
	svc.mu.Lock()
	acct, ok := svc.accounts[creds.Username]
	svc.mu.Unlock()

	if !ok {
		return identity.Auth{}, &identity.AuthError{Reason: "Invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)); err != nil {
		return identity.Auth{}, &identity.AuthError{Reason: "Invalid credentials"}
	}
	if !acct.ident.IsActive {
		return identity.Auth{}, &identity.AuthError{Reason: "Account deactivated"}
	}

	token, err := svc.mintToken(acct.ident)
	if err != nil {
		return identity.Auth{}, &identity.TransportError{Err: err}
	}
	return identity.Auth{Token: token, Identity: acct.ident}, nil
}

func (svc *Service) Register(_ context.Context, reg identity.Registration) (identity.Identity, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, exists := svc.accounts[reg.Username]; exists {
		return identity.Identity{}, core.NewValidationError(nil,
			core.FieldError{Field: "username", Error: "a user with this username already exists"},
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.MinCost)
	if err != nil {
		return identity.Identity{}, &identity.TransportError{Err: err}
	}
	var schoolID *string
	if reg.SchoolID != "" {
		schoolID = &reg.SchoolID
	}
	ident := identity.Identity{
		ID:        uuid.NewString(),
		Username:  reg.Username,
		Email:     reg.Email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Role:      reg.Role,
		SchoolID:  schoolID,
		IsActive:  true,
	}
	svc.accounts[reg.Username] = &account{ident: ident, hash: hash}
	return ident, nil
}

func (svc *Service) mintToken(ident identity.Identity) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Issuer:    svc.appName,
		Subject:   ident.ID,
		Audience:  "Academia",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(7 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(svc.secretKey)
}
