package controllers

import (
	"net/http"
	"time"

	"go-parcel/logger"
	"go-parcel/models"
	"go-parcel/store"
	"go-parcel/utils"
)

// TrackingController handles tracking log requests
type TrackingController struct {
	Store   store.TrackingStore
	Timeout time.Duration
}

// NewTrackingController creates a new TrackingController
func NewTrackingController(tracking store.TrackingStore, timeout time.Duration) *TrackingController {
	return &TrackingController{Store: tracking, Timeout: timeout}
}

// CreateTrackingLog appends a status entry to a parcel's history
func (tc *TrackingController) CreateTrackingLog(w http.ResponseWriter, r *http.Request) {
	var req models.TrackingRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("invalid tracking body")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := models.Validate(req); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("tracking log failed validation")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid tracking log: "+err.Error())
		return
	}

	log := models.TrackingLog{
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Message:    req.Message,
		Time:       time.Now().UTC(),
		UpdatedBy:  req.UpdatedBy,
	}
	if req.ParcelID != "" {
		parcelID, ok := parseObjectID(w, r, req.ParcelID, "Invalid parcel id")
		if !ok {
			return
		}
		log.ParcelID = &parcelID
	}

	ctx, cancel := storeContext(r, tc.Timeout)
	defer cancel()

	id, err := tc.Store.Create(ctx, log)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error inserting tracking log")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to save tracking log")
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.TrackingResponse{Success: true, InsertedID: id})
}
