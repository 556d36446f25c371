package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heritage_routes/internal/services"
)

type GeocodeController struct {
	geocoder *services.GeocodeService
}

func NewGeocodeController(geocoder *services.GeocodeService) *GeocodeController {
	return &GeocodeController{geocoder: geocoder}
}

// ReverseGeocode turns a coordinate into a street address for display next
// to the picked start point.
func (gc *GeocodeController) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinate out of bounds"})
		return
	}

	address, err := gc.geocoder.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, services.ErrGeocoderUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoder unavailable, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}
