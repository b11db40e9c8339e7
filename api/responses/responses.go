package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    pkgerrors.Code `json:"code"`
	Message string         `json:"message"`
	Details any            `json:"details,omitempty"`
}

// WriteSuccess writes the success envelope with the given status.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

// WriteError maps the error onto its HTTP shape. Internal errors are logged
// with the full chain and answered with the generic public message so driver
// detail never leaks to clients.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	if meta.HTTPStatus >= http.StatusInternalServerError && logg != nil {
		dump := pkgerrors.Dump(err)
		logg.Error(logg.WithField(ctx, "error_dump", dump), "request failed", err)
	}

	body := errorBody{
		Code:    typed.Code(),
		Message: typed.Message(),
	}
	if body.Message == "" || meta.HTTPStatus >= http.StatusInternalServerError {
		body.Message = meta.PublicMessage
	}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: body})
}
