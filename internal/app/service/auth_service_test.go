package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/internal/db"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/util"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testDB, "test-secret", 15*time.Minute, 7*24*time.Hour)

	return authService, testDB
}

func customerInput() RegisterInput {
	return RegisterInput{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "User",
		Username:  "newuser",
		Role:      model.RoleCustomer,
	}
}

func TestAuthService_Register_CreatesProfileAtomically(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, tokens, err := authService.Register(customerInput())
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)

	// The profile row exists from the moment the user does
	var profile model.UserProfile
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&profile).Error)

	// Password is stored hashed
	var stored model.User
	require.NoError(t, testDB.First(&stored, user.ID).Error)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "password123"))
}

func TestAuthService_Register_VendorCreatesShop(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	input := customerInput()
	input.Role = model.RoleVendor
	input.ShopName = "Corner Store"

	user, _, err := authService.Register(input)
	require.NoError(t, err)

	var vendor model.Vendor
	require.NoError(t, testDB.Where("user_id = ?", user.ID).First(&vendor).Error)
	assert.Equal(t, "Corner Store", vendor.ShopName)
	assert.False(t, vendor.IsApproved)
	assert.NotEmpty(t, vendor.Slug)
}

func TestAuthService_Register_VendorRequiresShopName(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	input := customerInput()
	input.Role = model.RoleVendor

	_, _, err := authService.Register(input)
	assert.ErrorIs(t, err, ErrShopNameRequired)

	// Nothing was written
	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	input := customerInput()
	input.Role = model.RoleAdmin

	_, _, err := authService.Register(input)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Register_UnknownRoleRejected(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	input := customerInput()
	input.Role = "superuser"

	_, _, err := authService.Register(input)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(customerInput())
	require.NoError(t, err)

	dup := customerInput()
	dup.Username = "otheruser"
	_, _, err = authService.Register(dup)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(customerInput())
	require.NoError(t, err)

	user, tokens, err := authService.Login("new@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register(customerInput())
	require.NoError(t, err)

	_, _, err = authService.Login("new@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, _, err := authService.Register(customerInput())
	require.NoError(t, err)

	require.NoError(t, testDB.Model(user).Update("is_active", false).Error)

	_, _, err = authService.Login("new@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, err := authService.Register(customerInput())
	require.NoError(t, err)

	profile, err := authService.UpdateProfile(user.ID, ProfileInput{
		Address: "42 Market Road",
		City:    "Pune",
		PinCode: "411001",
	})
	require.NoError(t, err)
	assert.Equal(t, "42 Market Road", profile.Address)
	assert.Equal(t, "Pune", profile.City)
}
