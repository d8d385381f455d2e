package http

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/cimillas/guestlist/internal/app"
	"github.com/cimillas/guestlist/internal/domain"
	"github.com/cimillas/guestlist/internal/render"
	"github.com/julienschmidt/httprouter"
)

// Activator is the minimal interface needed to activate a registration.
type Activator interface {
	Activate(ctx context.Context, in app.ActivateInput) (app.ActivateResult, error)
}

const invalidQRMessage = "Invalid QR code or registration not found"

func tokenParam(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("token")
}

// writeTokenError reports an unknown token as an invalid QR code.
func writeTokenError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrRegistrationNotFound) {
		writeError(w, http.StatusNotFound, codeRegistrationNotFound, invalidQRMessage)
		return
	}
	writeServiceError(w, err)
}

// HandleGetActivation returns the registration behind a QR token.
func HandleGetActivation(svc RegistrationLookup, links render.Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.ByQRToken(r.Context(), tokenParam(r))
		if err != nil {
			writeTokenError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newRegistrationResponse(details, links))
	}
}

// Coordinates are range-checked by the activation rules after the status and
// window checks, so an already activated entry reports that first.
type activateRequest struct {
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	AccuracyMeters *float64 `json:"accuracy_meters" validate:"omitnil,gte=0"`
}

// coordinate maps a missing value to NaN, which never validates.
func coordinate(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

type activateResponse struct {
	Status       string               `json:"status"`
	Message      string               `json:"message"`
	Activation   *activationResponse  `json:"activation"`
	Registration registrationResponse `json:"registration"`
}

// HandleActivate runs an activation attempt for the token in the path.
func HandleActivate(svc Activator, links render.Links, logger *log.Logger) http.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenParam(r)

		var req activateRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		res, err := svc.Activate(r.Context(), app.ActivateInput{
			QRToken:        token,
			Lat:            coordinate(req.Lat),
			Lng:            coordinate(req.Lng),
			AccuracyMeters: req.AccuracyMeters,
		})
		if err != nil {
			_, body := errorFor(err)
			logger.Printf("activation token=%s result=%s", token, body.Code)
			writeTokenError(w, err)
			return
		}
		logger.Printf("activation token=%s result=activated distance=%.3f", token, res.Activation.DistanceMiles)

		writeJSON(w, http.StatusOK, activateResponse{
			Status:       string(domain.StatusActivated),
			Message:      "Your guest list entry for " + res.Registration.Venue.Name + " is now active",
			Activation:   newActivationResponse(res.Activation),
			Registration: newRegistrationResponse(res.Registration, links),
		})
	}
}

// HandleActivationQR serves the QR code image that encodes the activation URL.
func HandleActivationQR(svc RegistrationLookup, links render.Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.ByQRToken(r.Context(), tokenParam(r))
		if err != nil {
			writeTokenError(w, err)
			return
		}

		size := render.DefaultQRSize
		if raw := r.URL.Query().Get("size"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 64 || n > 1024 {
				writeError(w, http.StatusBadRequest, codeValidationFailed, "size must be between 64 and 1024")
				return
			}
			size = n
		}

		png, err := render.QRPNG(links.ActivationURL(details.QRToken), size)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "private, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
