package controllers

import (
	"errors"
	"net/http"
	"time"

	"go-parcel/logger"
	"go-parcel/models"
	"go-parcel/store"
	"go-parcel/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParcelController handles parcel-related requests
type ParcelController struct {
	Store   store.ParcelStore
	Timeout time.Duration
}

// NewParcelController creates a new ParcelController
func NewParcelController(parcels store.ParcelStore, timeout time.Duration) *ParcelController {
	return &ParcelController{Store: parcels, Timeout: timeout}
}

// GetParcels lists parcels newest first, optionally only the ones created by ?email=
func (pc *ParcelController) GetParcels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r, pc.Timeout)
	defer cancel()

	parcels, err := pc.Store.List(ctx, r.URL.Query().Get("email"))
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error fetching parcels")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to get parcels")
		return
	}

	utils.WriteJSON(w, http.StatusOK, parcels)
}

// GetParcelByID retrieves a single parcel by ID
func (pc *ParcelController) GetParcelByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, mux.Vars(r)["id"], "Invalid parcel id")
	if !ok {
		return
	}

	ctx, cancel := storeContext(r, pc.Timeout)
	defer cancel()

	parcel, err := pc.Store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Parcel not found")
		return
	}
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error fetching parcel")
		utils.WriteMessage(w, http.StatusInternalServerError, "Error fetching parcel")
		return
	}

	utils.WriteJSON(w, http.StatusOK, parcel)
}

// CreateParcel stores the parcel from the request body. The creation time
// and payment status are filled in when the client leaves them out.
func (pc *ParcelController) CreateParcel(w http.ResponseWriter, r *http.Request) {
	var parcel models.Parcel
	if err := utils.DecodeJSON(w, r, &parcel); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("invalid parcel body")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := models.Validate(parcel); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("parcel failed validation")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid parcel: "+err.Error())
		return
	}

	parcel.ID = primitive.NilObjectID
	if parcel.CreatedAt.IsZero() {
		parcel.CreatedAt = time.Now().UTC()
	}
	if parcel.PaymentStatus == "" {
		parcel.PaymentStatus = models.PaymentStatusUnpaid
	}

	ctx, cancel := storeContext(r, pc.Timeout)
	defer cancel()

	id, err := pc.Store.Create(ctx, parcel)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error inserting parcel")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to create parcel")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, models.InsertResult{Acknowledged: true, InsertedID: id})
}

// DeleteParcel deletes a parcel by ID
func (pc *ParcelController) DeleteParcel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, r, mux.Vars(r)["id"], "Invalid parcel id")
	if !ok {
		return
	}

	ctx, cancel := storeContext(r, pc.Timeout)
	defer cancel()

	deleted, err := pc.Store.Delete(ctx, id)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error deleting parcel")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to delete parcel")
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.DeleteResult{Acknowledged: true, DeletedCount: deleted})
}
