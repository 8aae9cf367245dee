package handlers

import (
	"strconv"

	"rentvehicle/models"
	"rentvehicle/services/vehicle"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// VehicleSvc is wired in main.
var VehicleSvc vehicle.VehicleService

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func floatQuery(c *gin.Context, key string) float64 {
	f, _ := strconv.ParseFloat(c.Query(key), 64)
	return f
}

// ListVehicleTypes returns every vehicle category.
func ListVehicleTypes(c *gin.Context) {
	types, err := VehicleSvc.ListTypes()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", types)
}

// CreateVehicleType adds a category (admin).
func CreateVehicleType(c *gin.Context) {
	var t models.VehicleType
	if err := c.ShouldBindJSON(&t); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	created, err := VehicleSvc.CreateType(&t)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle type created", created)
}

// UpdateVehicleType edits a category (admin).
func UpdateVehicleType(c *gin.Context) {
	var t models.VehicleType
	if err := c.ShouldBindJSON(&t); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	t.ID = c.Param("id")
	updated, err := VehicleSvc.UpdateType(&t)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle type updated", updated)
}

// DeleteVehicleType removes a category (admin).
func DeleteVehicleType(c *gin.Context) {
	if err := VehicleSvc.DeleteType(c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle type deleted", nil)
}

// SearchVehicleModels runs the catalog search behind the storefront listing.
func SearchVehicleModels(c *gin.Context) {
	q := models.ModelQuery{
		Keyword:       c.Query("keyword"),
		VehicleTypeID: c.Query("typeId"),
		Brand:         c.Query("brand"),
		MinPrice:      floatQuery(c, "minPrice"),
		MaxPrice:      floatQuery(c, "maxPrice"),
		Page:          intQuery(c, "page"),
		Size:          intQuery(c, "size"),
	}
	page, err := VehicleSvc.SearchModels(q)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", page)
}

// GetVehicleModel returns one catalog entry with units and pickup locations.
func GetVehicleModel(c *gin.Context) {
	detail, err := VehicleSvc.GetModel(c.Param("id"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", detail)
}

// ListBrands returns the distinct catalog brands for the search filters.
func ListBrands(c *gin.Context) {
	brands, err := VehicleSvc.Brands()
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", brands)
}

// CreateVehicleModel adds a catalog entry (admin).
func CreateVehicleModel(c *gin.Context) {
	var m models.VehicleModel
	if err := c.ShouldBindJSON(&m); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	created, err := VehicleSvc.CreateModel(&m)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle model created", created)
}

// UpdateVehicleModel edits a catalog entry (admin).
func UpdateVehicleModel(c *gin.Context) {
	var m models.VehicleModel
	if err := c.ShouldBindJSON(&m); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	m.ID = c.Param("id")
	updated, err := VehicleSvc.UpdateModel(&m)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle model updated", updated)
}

// DeleteVehicleModel removes a catalog entry (admin).
func DeleteVehicleModel(c *gin.Context) {
	if err := VehicleSvc.DeleteModel(c.Param("id")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle model deleted", nil)
}

// CreateVehicleUnit registers a physical unit (admin).
func CreateVehicleUnit(c *gin.Context) {
	var v models.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	created, err := VehicleSvc.CreateUnit(&v)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle created", created)
}

// ListVehicleUnits lists fleet units for the back office (admin).
func ListVehicleUnits(c *gin.Context) {
	q := models.VehicleQuery{
		Keyword: c.Query("keyword"),
		Status:  models.VehicleStatus(c.Query("status")),
		Page:    intQuery(c, "page"),
		Size:    intQuery(c, "size"),
	}
	page, err := VehicleSvc.ListUnits(q)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "", page)
}

// UpdateVehicleUnitStatus moves a unit through its lifecycle (admin).
func UpdateVehicleUnitStatus(c *gin.Context) {
	var input struct {
		Status models.VehicleStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.ErrInvalidReq)
		return
	}
	if err := VehicleSvc.UpdateUnitStatus(c.Param("id"), input.Status); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, "Vehicle status updated", nil)
}
