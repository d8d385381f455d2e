package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cimillas/guestlist/internal/domain"
	"github.com/cimillas/guestlist/internal/render"
)

// RegistrationLookup is the minimal interface needed for read-only lookups.
type RegistrationLookup interface {
	ByVoucherCode(ctx context.Context, code string) (domain.RegistrationDetails, error)
	ByQRToken(ctx context.Context, token string) (domain.RegistrationDetails, error)
}

// HandleConfirmation returns the registration for ?code=<voucher>.
func HandleConfirmation(svc RegistrationLookup, links render.Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.ByVoucherCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newRegistrationResponse(details, links))
	}
}

// HandleVoucherPDF serves a printable voucher for ?code=<voucher>.
func HandleVoucherPDF(svc RegistrationLookup, links render.Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.ByVoucherCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		pdf, err := render.VoucherPDF(details, links)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="voucher-`+details.VoucherCode+`.pdf"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}
