package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// pathID extracts a numeric path variable
func pathID(req *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// decodeBody decodes a JSON body into a request DTO and validates it.
// Returns false after writing the error response.
func (r *Router) decodeBody(w http.ResponseWriter, req *http.Request, dto interface{}) bool {
	if err := json.NewDecoder(req.Body).Decode(dto); err != nil {
		respondError(w, http.StatusBadRequest, "Corps de requête invalide")
		return false
	}
	if err := r.validate.Struct(dto); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}
