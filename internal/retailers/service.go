package retailers

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/farmbazaar/farmbazaar/internal/shared"
)

// Service wraps retailer account business rules.
type Service struct {
	repo   Repository
	tokens *shared.TokenStore
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *shared.TokenStore) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a retailer account, storing only a bcrypt hash of the password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Retailer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	rt := Retailer{
		Aadhaar:        req.Aadhaar,
		EnterpriseName: req.EnterpriseName,
		OwnerName:      req.OwnerName,
		MobileNumber:   req.MobileNumber,
		PasswordHash:   string(hash),
		State:          req.State,
		City:           req.City,
		GSTIN:          req.GSTIN,
		PAN:            req.PAN,
	}
	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return &rt, nil
}

// Authenticate validates mobile/password credentials and issues a bearer token.
func (s *Service) Authenticate(ctx context.Context, mobile, password string) (*Retailer, string, error) {
	rt, err := s.repo.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rt.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, shared.Identity{
		Kind:      shared.AccountRetailer,
		AccountID: rt.Aadhaar,
	})
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return rt, token, nil
}

// Get fetches a retailer by aadhaar.
func (s *Service) Get(ctx context.Context, aadhaar string) (*Retailer, error) {
	return s.repo.Get(ctx, aadhaar)
}
