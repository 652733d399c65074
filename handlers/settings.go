package handlers

import (
	"errors"
	"net/http"

	"sitekit/models"
	"sitekit/services/reservation"
	"sitekit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler serves the site editor's booking configuration endpoints.
type SettingsHandler struct {
	Service reservation.Service
	Logger  *zap.Logger
}

func NewSettingsHandler(svc reservation.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{Service: svc, Logger: logger}
}

func (h *SettingsHandler) GetSettingsHandler(c *gin.Context) {
	siteID := c.Param("site")

	settings, err := h.Service.GetSettings(siteID)
	if err != nil {
		h.Logger.Error("settings lookup failed", zap.String("siteId", siteID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load settings", "please try again later")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) SaveSettingsHandler(c *gin.Context) {
	siteID := c.Param("site")
	var settings models.BookingSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	settings.SiteID = siteID

	if err := h.Service.SaveSettings(&settings); err != nil {
		var bookingErr *reservation.BookingError
		if errors.As(err, &bookingErr) {
			utils.JSONError(c, http.StatusBadRequest, "invalid settings", bookingErr.Message)
			return
		}
		h.Logger.Error("settings save failed", zap.String("siteId", siteID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to save settings", "please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}
