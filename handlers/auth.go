package handlers

import (
	"rentvehicle/services/auth"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// AuthSvc is wired in main.
var AuthSvc auth.AuthService

// Register creates a local account and signs the browser in.
func Register(c *gin.Context) {
	var input struct {
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	result, err := AuthSvc.Register(input.FullName, input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	utils.SetAuthCookies(c, result.Token, result.SessionID)
	utils.JSONSuccess(c, "Registration successful", result.Identity)
}

// Login authenticates a local account.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	result, err := AuthSvc.Login(input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	utils.SetAuthCookies(c, result.Token, result.SessionID)
	utils.JSONSuccess(c, "Login successful", result.Identity)
}

// SocialLogin signs in with a Google or Facebook token, provisioning the
// account on first visit.
func SocialLogin(c *gin.Context) {
	var input struct {
		Provider string `json:"provider" binding:"required"`
		Token    string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	result, err := AuthSvc.SocialLogin(input.Provider, input.Token)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	utils.SetAuthCookies(c, result.Token, result.SessionID)
	utils.JSONSuccess(c, "Login successful", result.Identity)
}

// AdminLoginInitiate runs the admin password step and emails a one-time code.
func AdminLoginInitiate(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	challenge, err := AuthSvc.InitiateAdminLogin(input.Username, input.Password)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Verification code sent", challenge)
}

// AdminLoginVerify consumes the emailed code and completes the admin login.
func AdminLoginVerify(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Code     string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	result, err := AuthSvc.VerifyAdminLogin(input.Username, input.Code)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	utils.SetAuthCookies(c, result.Token, result.SessionID)
	utils.JSONSuccess(c, "Login successful", result.Identity)
}

// Me is the identity probe the storefront calls on boot and after focus.
func Me(c *gin.Context) {
	userID := c.GetString("userID")
	identity, err := AuthSvc.Me(userID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", identity)
}

// Logout destroys the current session and clears the auth cookies.
func Logout(c *gin.Context) {
	sessionID := c.GetString("sessionID")
	if sessionID == "" {
		sessionID = utils.SessionIDFromRequest(c)
	}
	if err := AuthSvc.Logout(sessionID); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.ClearAuthCookies(c)
	utils.JSONSuccess(c, "Logged out", nil)
}

// LogoutAll destroys every session the account has, on every browser.
func LogoutAll(c *gin.Context) {
	userID := c.GetString("userID")
	if err := AuthSvc.LogoutAll(userID); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.ClearAuthCookies(c)
	utils.JSONSuccess(c, "Logged out everywhere", nil)
}

// ForgotPassword starts the password reset flow by emailing a one-time code.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	challenge, err := AuthSvc.RequestPasswordReset(input.Email)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Verification code sent", challenge)
}

// ResetPassword completes the password reset flow with the emailed code.
func ResetPassword(c *gin.Context) {
	var input struct {
		Email           string `json:"email" binding:"required,email"`
		Code            string `json:"code" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	if err := AuthSvc.ResetPassword(input.Email, input.Code, input.NewPassword, input.ConfirmPassword); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Password reset successful", nil)
}

// RequestPasswordChange emails a one-time code for an authenticated
// password change.
func RequestPasswordChange(c *gin.Context) {
	challenge, err := AuthSvc.RequestPasswordChange(c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Verification code sent", challenge)
}

// ChangePassword completes an authenticated password change. All sessions
// are revoked on success, so the browser must sign in again.
func ChangePassword(c *gin.Context) {
	var input struct {
		Code            string `json:"code" binding:"required"`
		OldPassword     string `json:"oldPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	if err := AuthSvc.ChangePassword(c.GetString("userID"), input.Code,
		input.OldPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.ClearAuthCookies(c)
	utils.JSONSuccess(c, "Password changed, please sign in again", nil)
}

// UpdateProfile changes the display name and returns the fresh identity.
func UpdateProfile(c *gin.Context) {
	var input struct {
		FullName string `json:"fullName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	identity, err := AuthSvc.UpdateProfile(c.GetString("userID"), input.FullName)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Profile updated", identity)
}

// RegisterFCMToken stores the browser push token for booking notifications.
func RegisterFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}

	userID := c.GetString("userID")
	if err := AuthSvc.RegisterFCMToken(userID, input.Token); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Push token registered", nil)
}
