package controllers

import (
	"errors"
	"net/http"
	"time"

	"go-parcel/logger"
	"go-parcel/models"
	"go-parcel/store"
	"go-parcel/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserController handles user-related requests
type UserController struct {
	Store   store.UserStore
	Timeout time.Duration
}

// NewUserController creates a new UserController
func NewUserController(users store.UserStore, timeout time.Duration) *UserController {
	return &UserController{Store: users, Timeout: timeout}
}

// CreateUser stores the user unless one with the same email already exists,
// in which case nothing is written and inserted:false is reported.
func (uc *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.DecodeJSON(w, r, &user); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("invalid user body")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := models.Validate(user); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("user failed validation")
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid user: "+err.Error())
		return
	}
	user.ID = primitive.NilObjectID

	ctx, cancel := storeContext(r, uc.Timeout)
	defer cancel()

	id, err := uc.Store.Create(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		utils.WriteJSON(w, http.StatusOK, models.UserExistsResponse{Message: "user already exists", Inserted: false})
		return
	}
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error creating user")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.InsertResult{Acknowledged: true, InsertedID: id})
}
