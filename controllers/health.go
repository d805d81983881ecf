package controllers

import (
	"io"
	"net/http"
)

// Home is the liveness route
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Server is running 🚀")
}
