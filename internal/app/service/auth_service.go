package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/redis"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrInvalidRole           = errors.New("invalid account role")
	ErrShopNameRequired      = errors.New("shop name is required for vendor accounts")
)

// RegisterInput carries a registration form. Role decides whether a
// vendor record is created alongside the user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
	Phone     string
	Role      model.UserRole
	ShopName  string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, token string, expiry time.Duration) error
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, input ProfileInput) (*model.UserProfile, error)
}

// ProfileInput carries the editable address book fields.
type ProfileInput struct {
	ProfilePicture string
	CoverPhoto     string
	Address        string
	Country        string
	State          string
	City           string
	PinCode        string
}

type authService struct {
	userRepo      repository.UserRepository
	db            *gorm.DB
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	db *gorm.DB,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		db:            db,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates the user, its profile and (for vendor accounts) the
// vendor record in a single transaction, so a user row without a
// profile can never be observed.
func (s *authService) Register(input RegisterInput) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": input.Email,
		"role":  input.Role,
	})

	if input.Role == "" {
		input.Role = model.RoleCustomer
	}
	switch input.Role {
	case model.RoleCustomer:
	case model.RoleVendor:
		if input.ShopName == "" {
			logger.Warn("Registration failed: vendor without shop name", map[string]interface{}{
				"email": input.Email,
			})
			return nil, nil, ErrShopNameRequired
		}
	case model.RoleAdmin:
		// Admin accounts are provisioned by the seed command, never via
		// the public registration endpoint.
		logger.Warn("Registration failed: admin role not allowed", map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, ErrInvalidRole
	default:
		logger.Warn("Registration failed: unknown role", map[string]interface{}{
			"email": input.Email,
			"role":  input.Role,
		})
		return nil, nil, ErrInvalidRole
	}

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Phone:        input.Phone,
		Role:         input.Role,
		IsActive:     true,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during registration, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"email": input.Email,
			})
		}
	}()

	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, err
	}

	profile := &model.UserProfile{UserID: user.ID}
	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create user profile in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	if input.Role == model.RoleVendor {
		vendor := &model.Vendor{
			UserID:        user.ID,
			UserProfileID: profile.ID,
			ShopName:      input.ShopName,
			IsApproved:    false,
		}
		if err := tx.Create(vendor).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to create vendor in database", err, map[string]interface{}{
				"user_id":   user.ID,
				"shop_name": input.ShopName,
			})
			return nil, nil, err
		}
		user.Vendor = vendor
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit registration transaction", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, nil, err
	}

	user.Profile = profile

	// Generate tokens
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
			"email":   input.Email,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   input.Email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Login failed: account inactive", map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, ErrAccountInactive
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})

	return user, tokens, nil
}

// Logout blacklists the presented access token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string, expiry time.Duration) error {
	if expiry <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	if err := redis.BlacklistToken(ctx, token, expiry); err != nil {
		logger.Error("Failed to blacklist token on logout", err, nil)
		return err
	}
	logger.Info("User logged out", nil)
	return nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, input ProfileInput) (*model.UserProfile, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	profile, err := s.userRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.ProfilePicture != "" {
		profile.ProfilePicture = input.ProfilePicture
	}
	if input.CoverPhoto != "" {
		profile.CoverPhoto = input.CoverPhoto
	}
	profile.Address = input.Address
	profile.Country = input.Country
	profile.State = input.State
	profile.City = input.City
	profile.PinCode = input.PinCode

	if err := s.userRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": userID,
	})

	return profile, nil
}
