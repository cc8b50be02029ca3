package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrTrainerAlreadyExists = errors.New("trainer with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService registers and authenticates trainer accounts. Trainers are the
// only principals; clients never authenticate.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Trainer, error)
	Login(ctx context.Context, email, password string) (token string, trainer *domain.Trainer, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	trainerRepo   repository.TrainerRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(trainerRepo repository.TrainerRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		trainerRepo:   trainerRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new trainer registration.
func (s *authService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Trainer, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, errors.New("first name, last name, email and password cannot be empty")
	}

	// Check if the email is already taken.
	_, err := s.trainerRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrTrainerAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	trainer := &domain.Trainer{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	trainerID, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		return nil, err
	}
	trainer.ID = trainerID

	// Remove password hash before returning
	trainer.PasswordHash = ""
	return trainer, nil
}

// Login handles trainer authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, trainer *domain.Trainer, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	trainer, err = s.trainerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown email maps to the same failure as a bad password.
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(trainer.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		trainer = nil
		return
	}

	token, err = s.generateJWT(trainer)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	trainer.PasswordHash = ""
	return token, trainer, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	TrainerID int64 `json:"tid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given trainer.
func (s *authService) generateJWT(trainer *domain.Trainer) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		TrainerID: trainer.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(trainer.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "trainer-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
