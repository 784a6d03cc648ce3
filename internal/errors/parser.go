package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a low-level error.
type ErrorInfo struct {
	Code    string // error code (see codes.go)
	Message string // user-facing message
}

// ParseError converts database and transport errors into a code and a
// user-facing message. "Record missing" and "transient failure" stay
// distinct so lookup bugs are not swallowed as not-found.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL constraint violations

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 3. Network/connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An upstream service is unavailable. Please try again later",
		}
	}

	// 4. Default internal server error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	if strings.Contains(errLower, "username") || strings.Contains(errLower, "idx_users_username") {
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "This username is already taken",
		}
	}

	if strings.Contains(errLower, "slug") || strings.Contains(errLower, "idx_vendors_slug") {
		return ErrorInfo{
			Code:    VendorSlugExists,
			Message: "This shop identifier is already in use",
		}
	}

	if strings.Contains(errLower, "idx_user_product_cart") {
		// The cart upsert retries on this; surfacing it means the retry
		// itself failed.
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This product is already in your cart",
		}
	}

	if strings.Contains(errLower, "order_number") || strings.Contains(errLower, "idx_orders_order_number") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This order already exists. Please try again",
		}
	}

	if strings.Contains(errLower, "idx_vendor_category") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "You already have a category with this name",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "vendor") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This vendor still has linked records and cannot be deleted",
			}
		}
		if strings.Contains(context, "category") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This category still has products and cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Linked records exist, deletion is not possible",
		}
	}

	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "This user does not exist",
		}
	}
	if strings.Contains(errLower, "vendor_id") || strings.Contains(errLower, "fk_vendors") {
		return ErrorInfo{
			Code:    VendorNotFound,
			Message: "This vendor does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "This product does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "Email is required"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "Password is required"}
	}
	if strings.Contains(errLower, "first_name") {
		return ErrorInfo{Code: ValidationRequired, Message: "First name is required"}
	}
	if strings.Contains(errLower, "shop_name") {
		return ErrorInfo{Code: ValidationRequired, Message: "Shop name is required"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "vendor") {
		return "Vendor could not be found"
	}
	if strings.Contains(contextLower, "product") {
		return "This product does not exist!"
	}
	if strings.Contains(contextLower, "category") {
		return "Category could not be found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart item does not exist!"
	}
	if strings.Contains(contextLower, "order") {
		return "Order could not be found"
	}
	if strings.Contains(contextLower, "user") {
		return "User could not be found"
	}

	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Something went wrong while saving. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Something went wrong while updating. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Something went wrong while deleting. Please try again later"
	}
	if strings.Contains(contextLower, "checkout") || strings.Contains(contextLower, "payment") {
		return "Something went wrong while processing your order. Please try again later"
	}

	return "Something went wrong. Please try again later"
}
