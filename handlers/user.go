package handlers

import (
	userService "rentvehicle/services/user"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// UserSvc is wired in main.
var UserSvc userService.UserService

// ListUsers returns accounts for the back office table, optionally filtered
// by a keyword against names and emails.
func ListUsers(c *gin.Context) {
	users, err := UserSvc.List(c.Query("keyword"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", users)
}

// BanUser blocks an account and revokes its sessions.
func BanUser(c *gin.Context) {
	u, err := UserSvc.Ban(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "User banned", u)
}

// UnbanUser restores a banned account.
func UnbanUser(c *gin.Context) {
	u, err := UserSvc.Unban(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "User unbanned", u)
}
