package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/gorilla/mux"
)

// decodeAndValidate reads a JSON body into req and runs the struct tags.
// It writes the 400 itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			response.ValidationError(w, map[string]string{typeErr.Field: typeErr.Field + " must be a " + typeErr.Type.String()})
			return false
		}
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, "Request body is required")
			return false
		}
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// pathID parses the {name} route variable as a positive id.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(w, "Invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional positive id from the query string.
func queryID(w http.ResponseWriter, r *http.Request, name string) (*uint, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.ValidationError(w, map[string]string{name: name + " must be a positive integer"})
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func actorFrom(w http.ResponseWriter, r *http.Request) (access.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
	}
	return actor, ok
}
