package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/util"
)

type AuthController struct {
	authService service.AuthService
	jwtSecret   string
}

func NewAuthController(authService service.AuthService, jwtSecret string) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	ShopName  string `json:"shop_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	ProfilePicture string `json:"profile_picture"`
	CoverPhoto     string `json:"cover_photo"`
	Address        string `json:"address"`
	Country        string `json:"country"`
	State          string `json:"state"`
	City           string `json:"city"`
	PinCode        string `json:"pin_code"`
}

// Register creates a new customer or vendor account
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	user, tokens, err := ctrl.authService.Register(service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Phone:     req.Phone,
		Role:      model.UserRole(req.Role),
		ShopName:  req.ShopName,
	})
	if err != nil {
		switch err {
		case service.ErrEmailAlreadyExists:
			errors.Conflict(c, errors.AuthEmailAlreadyExists, "This email address is already registered")
		case service.ErrUsernameAlreadyExists:
			errors.Conflict(c, errors.AuthUsernameExists, "This username is already taken")
		case service.ErrInvalidRole:
			errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid account role")
		case service.ErrShopNameRequired:
			errors.BadRequest(c, errors.ValidationRequired, "Shop name is required for vendor accounts")
		default:
			info := errors.ParseError(err, "user create")
			errors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	log.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login authenticates a user and issues tokens
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid login data")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Invalid email or password")
		case service.ErrAccountInactive:
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthAccountInactive, "Your account has been deactivated")
		default:
			log.Error("Login failed", err, nil)
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout revokes the presented access token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, exists := middleware.GetToken(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	// Blacklist for the token's remaining lifetime.
	var expiry time.Duration
	if claims, err := util.ValidateToken(token, ctrl.jwtSecret); err == nil && claims.ExpiresAt != nil {
		expiry = time.Until(claims.ExpiresAt.Time)
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token, expiry); err != nil {
		log.Error("Logout failed", err, nil)
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "You are logged out",
	})
}

// Me returns the authenticated user with profile
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			errors.NotFound(c, errors.ResourceNotFound, "User could not be found")
			return
		}
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// UpdateProfile updates the caller's address book profile
// PUT /api/v1/auth/profile
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		errors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid profile data")
		return
	}

	profile, err := ctrl.authService.UpdateProfile(userID, service.ProfileInput{
		ProfilePicture: req.ProfilePicture,
		CoverPhoto:     req.CoverPhoto,
		Address:        req.Address,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		PinCode:        req.PinCode,
	})
	if err != nil {
		log.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"message": "Profile updated",
	})
}
