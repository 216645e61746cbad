// Package auth manages user accounts and JWT session tokens. Accounts live
// in a single "users" slot in the shared slot store, outside any per-user
// prefix.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quangdm/finvi/internal/models"
	"github.com/quangdm/finvi/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

const usersSlot = "users"

type Claims struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// userRecord is the persisted account shape. models.User hides the password
// hash from JSON, so the slot uses its own struct.
type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r userRecord) user() models.User {
	return models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CreatedAt:    r.CreatedAt,
	}
}

type Service struct {
	mu         sync.Mutex
	slots      storage.SlotStore
	users      []userRecord
	secret     []byte
	expiration time.Duration
}

// NewService loads the account list from the users slot. A store that has
// never seen a registration starts empty.
func NewService(ctx context.Context, slots storage.SlotStore, secret string, expiration time.Duration) (*Service, error) {
	s := &Service{
		slots:      slots,
		secret:     []byte(secret),
		expiration: expiration,
	}

	raw, err := slots.Get(ctx, usersSlot)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", usersSlot, err)
	}
	if err := json.Unmarshal(raw, &s.users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", usersSlot, err)
	}
	return s, nil
}

// Register creates an account. Usernames and emails are unique across all
// accounts, compared case-insensitively.
func (s *Service) Register(ctx context.Context, input models.UserRegistration) (models.AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, input.Username) || strings.EqualFold(u.Email, input.Email) {
			return models.AuthResponse{}, ErrUserExists
		}
	}

	record := userRecord{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    time.Now().UTC(),
	}

	next := append(slices.Clone(s.users), record)
	if err := s.save(ctx, next); err != nil {
		return models.AuthResponse{}, err
	}
	s.users = next

	return s.authResponse(record)
}

// Login accepts either the username or the email in the username field.
func (s *Service) Login(ctx context.Context, input models.UserLogin) (models.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.users, func(u userRecord) bool {
		return strings.EqualFold(u.Username, input.Username) || strings.EqualFold(u.Email, input.Username)
	})
	if idx < 0 {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	record := s.users[idx]
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(input.Password)); err != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	return s.authResponse(record)
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) authResponse(record userRecord) (models.AuthResponse, error) {
	claims := &Claims{
		UserID:   record.ID,
		Username: record.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "finvi",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{User: record.user(), Token: signed}, nil
}

func (s *Service) save(ctx context.Context, users []userRecord) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode %s: %w", usersSlot, err)
	}
	if err := s.slots.Set(ctx, usersSlot, raw); err != nil {
		return fmt.Errorf("persist %s: %w", usersSlot, err)
	}
	return nil
}
