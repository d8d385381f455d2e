package http

import (
	"time"

	"github.com/cimillas/guestlist/internal/domain"
	"github.com/cimillas/guestlist/internal/render"
)

type venueResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	VibeText      string    `json:"vibe_text,omitempty"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	GeofenceMiles float64   `json:"geofence_miles"`
	Timezone      string    `json:"timezone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func newVenueResponse(v domain.Venue) venueResponse {
	return venueResponse{
		ID:            v.ID,
		Name:          v.Name,
		Address:       v.Address,
		VibeText:      v.VibeText,
		Lat:           v.Location.Lat,
		Lng:           v.Location.Lng,
		GeofenceMiles: v.GeofenceMiles,
		Timezone:      v.Timezone,
		CreatedAt:     v.CreatedAt,
	}
}

type eventResponse struct {
	ID        string `json:"id"`
	EventDate string `json:"event_date"`
	Title     string `json:"title,omitempty"`
}

type partyResponse struct {
	MenCount         *int   `json:"men_count"`
	WomenCount       *int   `json:"women_count"`
	TotalCount       *int   `json:"total_count"`
	BottleService    bool   `json:"bottle_service"`
	BottleBudget     string `json:"bottle_budget,omitempty"`
	Instagram        string `json:"instagram,omitempty"`
	InterestLimo     bool   `json:"interest_limo"`
	InterestBoat     bool   `json:"interest_boat"`
	CelebrationType  string `json:"celebration_type,omitempty"`
	CelebrationOther string `json:"celebration_other,omitempty"`
}

type activationResponse struct {
	ActivatedAt    time.Time `json:"activated_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	DistanceMiles  float64   `json:"distance_miles"`
	AccuracyMeters *float64  `json:"accuracy_meters,omitempty"`
}

func newActivationResponse(a domain.Activation) *activationResponse {
	return &activationResponse{
		ActivatedAt:    a.At,
		ExpiresAt:      a.ExpiresAt,
		Lat:            a.Location.Lat,
		Lng:            a.Location.Lng,
		DistanceMiles:  a.DistanceMiles,
		AccuracyMeters: a.AccuracyMeters,
	}
}

type registrationResponse struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	VoucherCode     string              `json:"voucher_code"`
	QRToken         string              `json:"qr_token"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	Party           partyResponse       `json:"party"`
	Venue           venueResponse       `json:"venue"`
	Event           *eventResponse      `json:"event"`
	Activation      *activationResponse `json:"activation,omitempty"`
	ConfirmationURL string              `json:"confirmation_url"`
	ActivationURL   string              `json:"activation_url"`
	CreatedAt       time.Time           `json:"created_at"`
}

func newRegistrationResponse(d domain.RegistrationDetails, links render.Links) registrationResponse {
	p := d.Party
	resp := registrationResponse{
		ID:          d.ID,
		Status:      string(d.Status),
		VoucherCode: d.VoucherCode,
		QRToken:     d.QRToken,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Phone:       domain.FormatPhone(d.Phone),
		Party: partyResponse{
			MenCount:         p.MenCount,
			WomenCount:       p.WomenCount,
			TotalCount:       p.TotalCount,
			BottleService:    p.BottleService,
			BottleBudget:     p.BottleBudget,
			Instagram:        p.Instagram,
			InterestLimo:     p.InterestLimo,
			InterestBoat:     p.InterestBoat,
			CelebrationType:  p.CelebrationType,
			CelebrationOther: p.CelebrationOther,
		},
		Venue:           newVenueResponse(d.Venue),
		ConfirmationURL: links.ConfirmationURL(d.VoucherCode),
		ActivationURL:   links.ActivationURL(d.QRToken),
		CreatedAt:       d.CreatedAt,
	}
	if d.Event != nil {
		resp.Event = &eventResponse{
			ID:        d.Event.ID,
			EventDate: d.Event.Date.Format(domain.DateLayout),
			Title:     d.Event.Title,
		}
	}
	if d.Activation != nil {
		resp.Activation = newActivationResponse(*d.Activation)
	}
	return resp
}
