package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // account role

const (
	RoleCustomer UserRole = "customer" // buyer account
	RoleVendor   UserRole = "vendor"   // shop owner account
	RoleAdmin    UserRole = "admin"    // back-office account
)

// Valid reports whether the role is one of the known account roles.
// Access-control checkpoints must match roles exhaustively, never by
// comparing raw strings.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `json:"last_name"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Phone        string         `json:"phone"`
	Role         UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Profile *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Vendor  *Vendor      `gorm:"foreignKey:UserID" json:"vendor,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile holds the address book data every account carries.
// A profile row is created in the same transaction as its user; a user
// without a profile is a data error, never repaired silently.
type UserProfile struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	ProfilePicture string         `json:"profile_picture"`
	CoverPhoto     string         `json:"cover_photo"`
	Address        string         `gorm:"type:text" json:"address"`
	Country        string         `gorm:"type:varchar(50)" json:"country"`
	State          string         `gorm:"type:varchar(50)" json:"state"`
	City           string         `gorm:"type:varchar(50)" json:"city"`
	PinCode        string         `gorm:"type:varchar(10)" json:"pin_code"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
