package farmers

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/farmbazaar/farmbazaar/internal/shared"
)

// Service wraps farmer account business rules.
type Service struct {
	repo   Repository
	tokens *shared.TokenStore
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *shared.TokenStore) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a farmer account, storing only a bcrypt hash of the password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Farmer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	f := Farmer{
		FarmerName:   req.FarmerName,
		MobileNumber: req.MobileNumber,
		PasswordHash: string(hash),
		Gender:       req.Gender,
		State:        req.State,
		City:         req.City,
		Aadhaar:      req.Aadhaar,
	}
	id, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id
	return &f, nil
}

// Authenticate validates mobile/password credentials and issues a bearer token.
func (s *Service) Authenticate(ctx context.Context, mobile, password string) (*Farmer, string, error) {
	f, err := s.repo.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(f.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, shared.Identity{
		Kind:      shared.AccountFarmer,
		AccountID: strconv.FormatInt(f.ID, 10),
	})
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return f, token, nil
}

// Get fetches a farmer by id.
func (s *Service) Get(ctx context.Context, id int64) (*Farmer, error) {
	return s.repo.Get(ctx, id)
}
