package handlers

import (
	"rentvehicle/services/storage"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageSvc is wired in main. Nil when Cloudinary is not configured.
var StorageSvc storage.StorageService

const vehicleImagesFolder = "vehicles"

// UploadVehicleImage stores a catalog image and returns its URL (admin).
func UploadVehicleImage(c *gin.Context) {
	if StorageSvc == nil {
		utils.JSONError(c, utils.ErrFileUploadFailed)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.GetLogger().Error("UploadVehicleImage: failed to open upload", zap.Error(err))
		utils.JSONError(c, utils.ErrFileUploadFailed)
		return
	}
	defer file.Close()

	url, err := StorageSvc.UploadImage(c.Request.Context(), file, vehicleImagesFolder)
	if err != nil {
		utils.GetLogger().Error("UploadVehicleImage: upload failed", zap.Error(err))
		utils.JSONError(c, utils.ErrFileUploadFailed)
		return
	}

	utils.JSONSuccess(c, "Image uploaded", gin.H{"url": url})
}
