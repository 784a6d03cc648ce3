package repository

import (
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	FindProfileByUserID(userID uint) (*model.UserProfile, error)
	UpdateProfile(profile *model.UserProfile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile").First(&user, id).Error
	if err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Profile").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindProfileByUserID(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) UpdateProfile(profile *model.UserProfile) error {
	logger.Debug("Updating user profile in database", map[string]interface{}{
		"user_id": profile.UserID,
	})

	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to update user profile in database", err, map[string]interface{}{
			"user_id": profile.UserID,
		})
		return err
	}
	return nil
}
