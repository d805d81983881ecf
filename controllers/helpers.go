package controllers

import (
	"context"
	"net/http"
	"time"

	"go-parcel/logger"
	"go-parcel/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTimeout bounds store calls when a controller is built without one
const DefaultTimeout = 10 * time.Second

func storeContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

// parseObjectID writes a 400 and returns false when raw is not a valid id
func parseObjectID(w http.ResponseWriter, r *http.Request, raw, message string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("id", raw).Msg(message)
		utils.WriteMessage(w, http.StatusBadRequest, message)
		return primitive.NilObjectID, false
	}
	return id, true
}
