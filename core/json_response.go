package core

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Error writes err as a JSON error response. HTTPError values control the
// status code and error code; anything else becomes a 500 with a generic
// body so internal details never leak to the client.
func Error(w http.ResponseWriter, err error) {
	httpErr := ErrInternalServerError

	var e HTTPError
	if errors.As(err, &e) {
		httpErr = e
	}

	body := ErrorResponse{Error: ErrorDetail{Code: httpErr.Key, Message: httpErr.Message}}
	if httpErr.Code >= http.StatusInternalServerError {
		body.Error.Message = ""
	}

	JSON(w, httpErr.Code, body)
}

// DecodeJSON reads the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrBadRequest.WithMessage("invalid request body")
	}
	return nil
}
