package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/middleware"
	"storefront/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps a service error onto its HTTP status.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		stockErr      *services.StockError
		duplicateErr  *services.DuplicateError
		authErr       *services.AuthError
		stateErr      *services.StateError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &stockErr),
		errors.As(err, &duplicateErr), errors.As(err, &stateErr):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &authErr):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &notFoundErr):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// resolveUserID finds the acting user: JWT claims when present, otherwise
// an explicit userId (request body field or query parameter). The zero
// ObjectID means no identity was resolvable.
func resolveUserID(r *http.Request, bodyUserID string) primitive.ObjectID {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if id, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			return id
		}
	}
	raw := bodyUserID
	if raw == "" {
		raw = r.URL.Query().Get("userId")
	}
	if raw == "" {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}
