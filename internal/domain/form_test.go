package domain

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func validForm() RegistrationForm {
	return NewRegistrationForm(
		EventFields{VenueID: "venue-1", EventDate: "2025-06-14"},
		ContactFields{FirstName: " Ada ", LastName: "Lovelace", Email: "ada@example.com", Phone: "(555) 123-4567"},
		PartyFields{MenCount: intPtr(2), WomenCount: intPtr(3), BottleService: true, BottleBudget: " $500 "},
	)
}

func TestIsValidPhone(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"(555) 123-4567": true,
		"555.123.4567":   true,
		"5551234567":     true,
		"12345":          false,
		"1-555-123-4567": false,
		"":               false,
	}
	for in, want := range tests {
		if got := IsValidPhone(in); got != want {
			t.Fatalf("IsValidPhone(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	if !IsValidEmail("guest@club.com") {
		t.Fatalf("expected valid email")
	}
	for _, bad := range []string{"guest", "guest@club", "gu est@club.com", "@club.com"} {
		if IsValidEmail(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	if got := FormatPhone("555.123.4567"); got != "(555) 123-4567" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatPhone("12345"); got != "12345" {
		t.Fatalf("expected short number unchanged, got %q", got)
	}
}

func TestRegistrationForm_AdvanceIsImmutable(t *testing.T) {
	t.Parallel()

	form := validForm()
	next, err := form.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if form.Step() != StepEvent {
		t.Fatalf("expected original form to stay on step 1, got %d", form.Step())
	}
	if next.Step() != StepContact {
		t.Fatalf("expected step 2, got %d", next.Step())
	}
}

func TestRegistrationForm_StepErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(f *RegistrationForm)
		field string
	}{
		{name: "missing venue", edit: func(f *RegistrationForm) { f.Event.VenueID = "" }, field: "venue_id"},
		{name: "bad date", edit: func(f *RegistrationForm) { f.Event.EventDate = "06/14/2025" }, field: "event_date"},
		{name: "blank first name", edit: func(f *RegistrationForm) { f.Contact.FirstName = "  " }, field: "first_name"},
		{name: "missing last name", edit: func(f *RegistrationForm) { f.Contact.LastName = "" }, field: "last_name"},
		{name: "bad email", edit: func(f *RegistrationForm) { f.Contact.Email = "nope" }, field: "email"},
		{name: "bad phone", edit: func(f *RegistrationForm) { f.Contact.Phone = "12345" }, field: "phone"},
		{name: "negative count", edit: func(f *RegistrationForm) { f.Party.MenCount = intPtr(-1) }, field: "men_count"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			form := validForm()
			tt.edit(&form)

			_, err := form.Complete()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestRegistrationForm_SubmitRequiresFinalStep(t *testing.T) {
	t.Parallel()

	if _, err := validForm().Submit(); err == nil {
		t.Fatalf("expected error submitting from step 1")
	}
}

func TestRegistrationForm_CompleteNormalizes(t *testing.T) {
	t.Parallel()

	signup, err := validForm().Complete()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if signup.FirstName != "Ada" {
		t.Fatalf("expected trimmed first name, got %q", signup.FirstName)
	}
	if !signup.EventDate.Equal(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected event date %v", signup.EventDate)
	}
	if signup.Party.TotalCount == nil || *signup.Party.TotalCount != 5 {
		t.Fatalf("expected total 5, got %v", signup.Party.TotalCount)
	}
	if signup.Party.BottleBudget != "$500" {
		t.Fatalf("expected trimmed budget, got %q", signup.Party.BottleBudget)
	}

	form := validForm()
	form.Party.MenCount = intPtr(0)
	form.Party.WomenCount = nil
	signup, err = form.Complete()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if signup.Party.MenCount != nil || signup.Party.TotalCount != nil {
		t.Fatalf("expected zero counts stored as nil, got %+v", signup.Party)
	}
}
