package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the API envelope shared with the storefront. Code 1000 means
// business success; any other code carries a user-facing Message.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
}

const CodeSuccess = 1000

// AppError is a business failure with a stable code and HTTP status.
type AppError struct {
	Code    int
	Message string
	Status  int
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

var (
	ErrUncategorized   = NewAppError(9999, "Uncategorized error", http.StatusInternalServerError)
	ErrAccessDenied    = NewAppError(1001, "Access denied", http.StatusForbidden)
	ErrInvalidReq      = NewAppError(1002, "Invalid request", http.StatusBadRequest)
	ErrTooManyRequests = NewAppError(1003, "Too many requests. Try again later.", http.StatusTooManyRequests)

	ErrUserNotFound       = NewAppError(2001, "User not found", http.StatusNotFound)
	ErrUserExists         = NewAppError(2002, "User already exists", http.StatusBadRequest)
	ErrEmailExists        = NewAppError(2003, "Email already exists", http.StatusBadRequest)
	ErrInvalidCredentials = NewAppError(2004, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthenticated    = NewAppError(2005, "User not authenticated", http.StatusUnauthorized)
	ErrPasswordMismatch   = NewAppError(2006, "Password and confirm password do not match", http.StatusBadRequest)
	ErrUserBanned         = NewAppError(2007, "User has been banned", http.StatusForbidden)
	ErrSessionExpired     = NewAppError(2008, "Session expired or invalid", http.StatusUnauthorized)
	ErrOAuthTokenInvalid  = NewAppError(2010, "Invalid OAuth token", http.StatusBadRequest)
	ErrInvalidOTP         = NewAppError(2012, "Invalid verification code", http.StatusBadRequest)
	ErrOTPExpired         = NewAppError(2013, "Verification code expired", http.StatusBadRequest)
	ErrInvalidOldPassword = NewAppError(2014, "Old password is incorrect", http.StatusBadRequest)
	ErrPasswordNotAllowed = NewAppError(2015, "Password changes are not available for social accounts", http.StatusBadRequest)

	ErrVehicleTypeNotFound = NewAppError(3001, "Vehicle type not found", http.StatusNotFound)
	ErrVehicleTypeExists   = NewAppError(3002, "Vehicle type already exists", http.StatusBadRequest)
	ErrModelNotFound       = NewAppError(3003, "Vehicle model not found", http.StatusNotFound)
	ErrVehicleNotFound     = NewAppError(3004, "Vehicle not found", http.StatusNotFound)
	ErrVehicleUnavailable  = NewAppError(3005, "Vehicle is not available for rent", http.StatusBadRequest)
	ErrLicensePlateExists  = NewAppError(3006, "License plate already exists", http.StatusBadRequest)
	ErrInvalidVehicleState = NewAppError(3007, "Invalid vehicle status", http.StatusBadRequest)

	ErrBookingNotFound      = NewAppError(4001, "Booking not found", http.StatusNotFound)
	ErrBookingConflict      = NewAppError(4002, "Booking dates conflict with existing bookings", http.StatusBadRequest)
	ErrInvalidBookingDates  = NewAppError(4003, "Invalid booking dates", http.StatusBadRequest)
	ErrBookingApproved      = NewAppError(4004, "Booking already approved", http.StatusBadRequest)
	ErrBookingCannotCancel  = NewAppError(4005, "Booking cannot be cancelled in current status", http.StatusBadRequest)
	ErrBookingNotAuthorized = NewAppError(4006, "Not authorized to modify this booking", http.StatusForbidden)
	ErrInvalidBookingStatus = NewAppError(4007, "Invalid booking status", http.StatusBadRequest)

	ErrPaymentNotFound  = NewAppError(5001, "Payment not found", http.StatusNotFound)
	ErrPaymentFailed    = NewAppError(5002, "Payment failed", http.StatusBadRequest)
	ErrPaymentProcessed = NewAppError(5003, "Payment already processed", http.StatusBadRequest)
	ErrInvalidPayMethod = NewAppError(5004, "Invalid payment method", http.StatusBadRequest)

	ErrReviewNotFound      = NewAppError(6001, "Review not found", http.StatusNotFound)
	ErrReviewExists        = NewAppError(6002, "Review already exists for this booking", http.StatusBadRequest)
	ErrInvalidRating       = NewAppError(6003, "Rating must be between 1 and 5", http.StatusBadRequest)
	ErrReviewNotAuthorized = NewAppError(6004, "Not authorized to modify this review", http.StatusForbidden)

	ErrFileUploadFailed = NewAppError(7002, "Failed to upload file", http.StatusInternalServerError)
)

// JSONSuccess writes a success envelope.
func JSONSuccess(c *gin.Context, message string, result any) {
	c.JSON(http.StatusOK, Response{Code: CodeSuccess, Message: message, Result: result})
}

// JSONError writes a business-failure envelope. Unrecognized errors map to 9999.
func JSONError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		GetLogger().Error("Unhandled service error", zap.Error(err))
		appErr = ErrUncategorized
	}
	c.JSON(appErr.Status, Response{Code: appErr.Code, Message: appErr.Message})
}

// ErrorHandler is a middleware that catches panics and returns a structured envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, Response{
					Code:    ErrUncategorized.Code,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
