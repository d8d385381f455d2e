package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/guestlist/internal/domain"
	"github.com/cimillas/guestlist/internal/render"
)

// Registrar is the minimal interface needed for the signup endpoints.
type Registrar interface {
	Register(ctx context.Context, form domain.RegistrationForm) (domain.Registration, error)
	ValidateStep(form domain.RegistrationForm, step domain.FormStep) error
}

type registerRequest struct {
	VenueID          string `json:"venue_id"`
	EventDate        string `json:"event_date"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	MenCount         *int   `json:"men_count"`
	WomenCount       *int   `json:"women_count"`
	BottleService    bool   `json:"bottle_service"`
	BottleBudget     string `json:"bottle_budget"`
	Instagram        string `json:"instagram"`
	InterestLimo     bool   `json:"interest_limo"`
	InterestBoat     bool   `json:"interest_boat"`
	CelebrationType  string `json:"celebration_type"`
	CelebrationOther string `json:"celebration_other"`
}

func (req registerRequest) form() domain.RegistrationForm {
	return domain.NewRegistrationForm(
		domain.EventFields{VenueID: req.VenueID, EventDate: req.EventDate},
		domain.ContactFields{FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, Phone: req.Phone},
		domain.PartyFields{
			MenCount:         req.MenCount,
			WomenCount:       req.WomenCount,
			BottleService:    req.BottleService,
			BottleBudget:     req.BottleBudget,
			Instagram:        req.Instagram,
			InterestLimo:     req.InterestLimo,
			InterestBoat:     req.InterestBoat,
			CelebrationType:  req.CelebrationType,
			CelebrationOther: req.CelebrationOther,
		},
	)
}

type registerResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	VoucherCode     string    `json:"voucher_code"`
	QRToken         string    `json:"qr_token"`
	ConfirmationURL string    `json:"confirmation_url"`
	ActivationURL   string    `json:"activation_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// HandleRegister creates a registration from a completed form.
func HandleRegister(svc Registrar, links render.Links) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		reg, err := svc.Register(r.Context(), req.form())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			ID:              reg.ID,
			Status:          string(reg.Status),
			VoucherCode:     reg.VoucherCode,
			QRToken:         reg.QRToken,
			ConfirmationURL: links.ConfirmationURL(reg.VoucherCode),
			ActivationURL:   links.ActivationURL(reg.QRToken),
			CreatedAt:       reg.CreatedAt,
		})
	}
}

type validateStepRequest struct {
	Step int `json:"step" validate:"required,min=1,max=3"`
	registerRequest
}

type validateStepResponse struct {
	Valid    bool `json:"valid"`
	Step     int  `json:"step"`
	NextStep *int `json:"next_step"`
}

// HandleValidateStep checks a single form step without storing anything.
func HandleValidateStep(svc Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateStepRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		step := domain.FormStep(req.Step)
		if err := svc.ValidateStep(req.form(), step); err != nil {
			writeServiceError(w, err)
			return
		}

		resp := validateStepResponse{Valid: true, Step: req.Step}
		if step < domain.StepParty {
			next := req.Step + 1
			resp.NextStep = &next
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
