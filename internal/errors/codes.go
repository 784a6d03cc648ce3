package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // duplicate username
	AuthAccountInactive    = "AUTH_ACCOUNT_INACTIVE"    // account not activated

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // wrong role for this surface
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // no role in context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin only
	AuthzVendorOnly   = "AUTHZ_VENDOR_ONLY"    // vendor only

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad payload
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad id param
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad field format
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // missing row
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate row
	ResourceConflict      = "RESOURCE_CONFLICT"       // constraint conflict

	// ==================== Vendors (VENDOR_) ====================
	VendorNotFound    = "VENDOR_NOT_FOUND"    // unknown vendor
	VendorNotApproved = "VENDOR_NOT_APPROVED" // awaiting admin approval
	VendorSlugExists  = "VENDOR_SLUG_EXISTS"  // duplicate slug

	// ==================== Catalog (CATALOG_) ====================
	CategoryNotFound = "CATEGORY_NOT_FOUND" // unknown category
	ProductNotFound  = "PRODUCT_NOT_FOUND"  // unknown product

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // item not in caller's cart
	CartEmpty        = "CART_EMPTY"          // checkout with empty cart

	// ==================== Orders (ORDER_) ====================
	OrderNotFound     = "ORDER_NOT_FOUND"      // no such order for caller
	OrderAlreadyPaid  = "ORDER_ALREADY_PAID"   // confirmation replay
	PaymentNotMatched = "PAYMENT_NOT_MATCHED"  // transaction id mismatch

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // not an image
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // over size limit
	UploadFailed          = "UPLOAD_FAILED"            // storage error

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unclassified
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB failure
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // upstream failure
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // bad configuration
)
