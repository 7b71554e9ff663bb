/*
Package resp provides helpers for sending standardized HTTP JSON responses.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"gochat/internal/pkg/errs"
	"gochat/internal/pkg/logx"
)

// JSONResponse is the response envelope returned to clients.
type JSONResponse struct {
	// Code is the business status code, 0 on success.
	Code int `json:"code"`

	// Message is the status description or error message.
	Message string `json:"message"`

	// Data is the optional payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON writes the payload as JSON with the given HTTP status.
func RespondJSON(w http.ResponseWriter, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(body)
}

// RespondSuccess sends a 200 response wrapping data.
func RespondSuccess(w http.ResponseWriter, data any) {
	RespondJSON(w, http.StatusOK, JSONResponse{Code: 0, Message: "success", Data: data})
}

// RespondError sends the error's HTTP status with its code and message.
func RespondError(w http.ResponseWriter, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, customErr.Status, JSONResponse{Code: customErr.Code, Message: customErr.Message})
}
