package domain

import (
	"errors"
	"strings"
	"time"
)

// FormStep is a page of the registration form.
type FormStep int

const (
	StepEvent   FormStep = 1
	StepContact FormStep = 2
	StepParty   FormStep = 3
)

var errFormIncomplete = errors.New("registration form is not on its final step")

type EventFields struct {
	VenueID   string
	EventDate string
}

type ContactFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type PartyFields struct {
	MenCount         *int
	WomenCount       *int
	BottleService    bool
	BottleBudget     string
	Instagram        string
	InterestLimo     bool
	InterestBoat     bool
	CelebrationType  string
	CelebrationOther string
}

// RegistrationForm is the multi-step signup state. It is a value: Advance
// returns a new form and leaves the receiver unchanged, and the step can
// only move forward after the current step validates.
type RegistrationForm struct {
	step    FormStep
	Event   EventFields
	Contact ContactFields
	Party   PartyFields
}

func NewRegistrationForm(ev EventFields, contact ContactFields, party PartyFields) RegistrationForm {
	return RegistrationForm{step: StepEvent, Event: ev, Contact: contact, Party: party}
}

func (f RegistrationForm) Step() FormStep {
	if f.step == 0 {
		return StepEvent
	}
	return f.step
}

// Advance validates the current step and moves to the next one.
func (f RegistrationForm) Advance() (RegistrationForm, error) {
	step := f.Step()
	if err := f.ValidateStep(step); err != nil {
		return f, err
	}
	if step < StepParty {
		f.step = step + 1
	}
	return f, nil
}

// ValidateStep checks only the fields that belong to step.
func (f RegistrationForm) ValidateStep(step FormStep) error {
	switch step {
	case StepEvent:
		if strings.TrimSpace(f.Event.VenueID) == "" {
			return invalid("venue_id", "Please select a venue")
		}
		if _, err := ParseDate(strings.TrimSpace(f.Event.EventDate)); err != nil {
			return invalid("event_date", "Please select an event date")
		}
	case StepContact:
		if strings.TrimSpace(f.Contact.FirstName) == "" {
			return invalid("first_name", "First name is required")
		}
		if strings.TrimSpace(f.Contact.LastName) == "" {
			return invalid("last_name", "Last name is required")
		}
		if !IsValidEmail(strings.TrimSpace(f.Contact.Email)) {
			return invalid("email", "Please enter a valid email address")
		}
		if !IsValidPhone(f.Contact.Phone) {
			return invalid("phone", "Please enter a valid 10-digit phone number")
		}
	case StepParty:
		if f.Party.MenCount != nil && *f.Party.MenCount < 0 {
			return invalid("men_count", "Party counts cannot be negative")
		}
		if f.Party.WomenCount != nil && *f.Party.WomenCount < 0 {
			return invalid("women_count", "Party counts cannot be negative")
		}
	default:
		return invalid("step", "Unknown form step")
	}
	return nil
}

// Signup is a fully validated registration request.
type Signup struct {
	VenueID   string
	EventDate time.Time
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Party     Party
}

// Submit validates the final step and returns the normalized signup.
func (f RegistrationForm) Submit() (Signup, error) {
	if f.Step() != StepParty {
		return Signup{}, errFormIncomplete
	}
	if err := f.ValidateStep(StepParty); err != nil {
		return Signup{}, err
	}
	date, err := ParseDate(strings.TrimSpace(f.Event.EventDate))
	if err != nil {
		return Signup{}, invalid("event_date", "Please select an event date")
	}

	men := positiveOrNil(f.Party.MenCount)
	women := positiveOrNil(f.Party.WomenCount)
	var total *int
	if sum := deref(men) + deref(women); sum > 0 {
		total = &sum
	}

	return Signup{
		VenueID:   strings.TrimSpace(f.Event.VenueID),
		EventDate: date,
		FirstName: strings.TrimSpace(f.Contact.FirstName),
		LastName:  strings.TrimSpace(f.Contact.LastName),
		Email:     strings.TrimSpace(f.Contact.Email),
		Phone:     strings.TrimSpace(f.Contact.Phone),
		Party: Party{
			MenCount:         men,
			WomenCount:       women,
			TotalCount:       total,
			BottleService:    f.Party.BottleService,
			BottleBudget:     strings.TrimSpace(f.Party.BottleBudget),
			Instagram:        strings.TrimSpace(f.Party.Instagram),
			InterestLimo:     f.Party.InterestLimo,
			InterestBoat:     f.Party.InterestBoat,
			CelebrationType:  strings.TrimSpace(f.Party.CelebrationType),
			CelebrationOther: strings.TrimSpace(f.Party.CelebrationOther),
		},
	}, nil
}

// Complete drives the form through every step and submits it.
func (f RegistrationForm) Complete() (Signup, error) {
	for f.Step() < StepParty {
		next, err := f.Advance()
		if err != nil {
			return Signup{}, err
		}
		f = next
	}
	return f.Submit()
}

func positiveOrNil(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	n := *v
	return &n
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
