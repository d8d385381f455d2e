package http

import (
	"log"
	"net/http"

	"github.com/cimillas/guestlist/internal/render"
	"github.com/julienschmidt/httprouter"
)

// AdminService covers every admin endpoint.
type AdminService interface {
	AdminVenueService
	AdminRegistrationService
}

// Routes holds what the router needs to serve the API.
type Routes struct {
	Venues    VenueLister
	Registrar Registrar
	Lookup    RegistrationLookup
	Activator Activator
	Admin     AdminService
	Auth      AdminAuthenticator
	Links     render.Links
	// Health is pinged by /health when set.
	Health Pinger
	// Limiter throttles signup, activation and login when set.
	Limiter *RateLimiter
	Logger  *log.Logger
}

// NewRouter wires every route onto an httprouter.Router.
func NewRouter(rt Routes) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		logger := rt.Logger
		if logger == nil {
			logger = log.Default()
		}
		logger.Printf("panic method=%s path=%s err=%v", r.Method, r.URL.Path, v)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}

	limited := func(h http.Handler) http.Handler {
		if rt.Limiter == nil {
			return h
		}
		return rt.Limiter.Limit(h)
	}
	admin := func(h http.Handler) http.Handler {
		return RequireAdmin(rt.Auth, h)
	}

	router.Handler(http.MethodGet, "/health", HandleHealth(rt.Health))
	router.Handler(http.MethodGet, "/venues", HandleListVenues(rt.Venues))

	router.Handler(http.MethodPost, "/register", limited(HandleRegister(rt.Registrar, rt.Links)))
	router.Handler(http.MethodPost, "/register/validate", HandleValidateStep(rt.Registrar))

	router.Handler(http.MethodGet, "/confirmation", HandleConfirmation(rt.Lookup, rt.Links))
	router.Handler(http.MethodGet, "/confirmation/voucher.pdf", HandleVoucherPDF(rt.Lookup, rt.Links))

	router.Handler(http.MethodGet, "/activate/:token", HandleGetActivation(rt.Lookup, rt.Links))
	router.Handler(http.MethodPost, "/activate/:token", limited(HandleActivate(rt.Activator, rt.Links, rt.Logger)))
	router.Handler(http.MethodGet, "/activate/:token/qr.png", HandleActivationQR(rt.Lookup, rt.Links))

	router.Handler(http.MethodPost, "/admin/login", limited(HandleAdminLogin(rt.Auth)))
	router.Handler(http.MethodGet, "/admin/venues", admin(HandleListVenues(rt.Admin)))
	router.Handler(http.MethodPost, "/admin/venues", admin(HandleAdminCreateVenue(rt.Admin)))
	router.Handler(http.MethodGet, "/admin/venues/:id", admin(HandleAdminGetVenue(rt.Admin)))
	router.Handler(http.MethodPut, "/admin/venues/:id", admin(HandleAdminUpdateVenue(rt.Admin)))
	router.Handler(http.MethodDelete, "/admin/venues/:id", admin(HandleAdminDeleteVenue(rt.Admin)))
	router.Handler(http.MethodGet, "/admin/registrations", admin(HandleAdminRegistrations(rt.Admin, rt.Links)))

	return router
}
