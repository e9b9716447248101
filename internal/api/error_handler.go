package api

import (
	"net/http"

	"github.com/vytor/ncertflash/internal/errors"
	"github.com/vytor/ncertflash/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]errorBody{
		"error": {Code: appErr.Code, Message: appErr.Message},
	})
}

func errNotFoundRoute(r *http.Request) error {
	return &errors.AppError{Code: errors.ErrCodeNotFound, Message: "no route for " + r.URL.Path, Status: http.StatusNotFound}
}

func errMethodNotAllowed(r *http.Request) error {
	return &errors.AppError{Code: errors.ErrCodeBadRequest, Message: r.Method + " not allowed on " + r.URL.Path, Status: http.StatusMethodNotAllowed}
}
