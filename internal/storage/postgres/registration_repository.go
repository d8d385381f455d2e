package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cimillas/guestlist/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository struct {
	conn
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{conn: conn{pool: pool}}
}

func (r *RegistrationRepository) EnsureEvent(ctx context.Context, candidate domain.Event) (string, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	const stmt = `
INSERT INTO events (id, venue_id, event_date, title, created_at)
VALUES ($1, $2, $3::date, $4, $5)
ON CONFLICT (venue_id, event_date) DO UPDATE SET venue_id = EXCLUDED.venue_id
RETURNING id::text`
	var id string
	err := r.queryRow(ctx, stmt,
		candidate.ID, candidate.VenueID, candidate.Date.Format(domain.DateLayout),
		nullString(candidate.Title), candidate.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isInvalidUUID(err) {
			return "", domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return "", domain.ErrVenueNotFound
		}
		return "", fmt.Errorf("ensure event: %w", err)
	}
	return id, nil
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO registrations (
	id, event_id, venue_id, first_name, last_name, email, phone,
	men_count, women_count, total_count, bottle_service, bottle_budget, instagram,
	interest_limo, interest_boat, celebration_type, celebration_other,
	voucher_code, qr_token, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	p := reg.Party
	_, err := r.exec(ctx, stmt,
		reg.ID, reg.EventID, reg.VenueID, reg.FirstName, reg.LastName, reg.Email, reg.Phone,
		p.MenCount, p.WomenCount, p.TotalCount, p.BottleService, nullString(p.BottleBudget), nullString(p.Instagram),
		p.InterestLimo, p.InterestBoat, nullString(p.CelebrationType), nullString(p.CelebrationOther),
		reg.VoucherCode, reg.QRToken, string(reg.Status), reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeCollision
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrVenueNotFound
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

const detailsQuery = `
SELECT
	r.id::text, r.event_id::text, r.venue_id::text, r.first_name, r.last_name, r.email, r.phone,
	r.men_count, r.women_count, r.total_count, r.bottle_service, r.bottle_budget, r.instagram,
	r.interest_limo, r.interest_boat, r.celebration_type, r.celebration_other,
	r.voucher_code, r.qr_token, r.status, r.activated_at, r.activation_lat, r.activation_lng,
	r.activation_distance_miles, r.activation_accuracy_meters, r.activation_expires_at, r.created_at,
	v.id::text, v.name, v.address, v.vibe_text, v.lat, v.lng, v.geofence_miles, v.timezone, v.created_at,
	e.id::text, e.event_date, e.title, e.created_at
FROM registrations r
JOIN venues v ON v.id = r.venue_id
LEFT JOIN events e ON e.id = r.event_id`

func scanDetails(row pgx.Row) (domain.RegistrationDetails, error) {
	var (
		d                                     domain.RegistrationDetails
		status                                string
		bottleBudget, instagram               *string
		celebrationType, celebrationOther     *string
		activatedAt, expiresAt                *time.Time
		actLat, actLng, actDistance, accuracy *float64
		address, vibe, timezone               *string
		eventID, eventTitle                   *string
		eventDate, eventCreated               *time.Time
	)
	p := &d.Party
	err := row.Scan(
		&d.ID, &d.EventID, &d.VenueID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&p.MenCount, &p.WomenCount, &p.TotalCount, &p.BottleService, &bottleBudget, &instagram,
		&p.InterestLimo, &p.InterestBoat, &celebrationType, &celebrationOther,
		&d.VoucherCode, &d.QRToken, &status, &activatedAt, &actLat, &actLng,
		&actDistance, &accuracy, &expiresAt, &d.CreatedAt,
		&d.Venue.ID, &d.Venue.Name, &address, &vibe, &d.Venue.Location.Lat, &d.Venue.Location.Lng,
		&d.Venue.GeofenceMiles, &timezone, &d.Venue.CreatedAt,
		&eventID, &eventDate, &eventTitle, &eventCreated,
	)
	if err != nil {
		return domain.RegistrationDetails{}, err
	}

	d.Status = domain.RegistrationStatus(status)
	p.BottleBudget = derefString(bottleBudget)
	p.Instagram = derefString(instagram)
	p.CelebrationType = derefString(celebrationType)
	p.CelebrationOther = derefString(celebrationOther)
	d.Venue.Address = derefString(address)
	d.Venue.VibeText = derefString(vibe)
	d.Venue.Timezone = derefString(timezone)

	if activatedAt != nil {
		act := &domain.Activation{At: *activatedAt, AccuracyMeters: accuracy}
		if actLat != nil && actLng != nil {
			act.Location = domain.Coordinates{Lat: *actLat, Lng: *actLng}
		}
		if actDistance != nil {
			act.DistanceMiles = *actDistance
		}
		if expiresAt != nil {
			act.ExpiresAt = *expiresAt
		}
		d.Activation = act
	}

	if eventID != nil {
		ev := &domain.Event{ID: *eventID, VenueID: d.VenueID, Title: derefString(eventTitle)}
		if eventDate != nil {
			ev.Date = time.Date(eventDate.Year(), eventDate.Month(), eventDate.Day(), 0, 0, 0, 0, time.UTC)
		}
		if eventCreated != nil {
			ev.CreatedAt = *eventCreated
		}
		d.Event = ev
	}
	return d, nil
}

func (r *RegistrationRepository) findOne(ctx context.Context, where string, arg any) (domain.RegistrationDetails, error) {
	d, err := scanDetails(r.queryRow(ctx, detailsQuery+` WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RegistrationDetails{}, domain.ErrRegistrationNotFound
		}
		return domain.RegistrationDetails{}, fmt.Errorf("find registration: %w", err)
	}
	return d, nil
}

func (r *RegistrationRepository) FindByVoucherCode(ctx context.Context, code string) (domain.RegistrationDetails, error) {
	return r.findOne(ctx, `r.voucher_code = $1`, code)
}

func (r *RegistrationRepository) FindByQRToken(ctx context.Context, token string) (domain.RegistrationDetails, error) {
	return r.findOne(ctx, `r.qr_token = $1`, token)
}

func (r *RegistrationRepository) Activate(ctx context.Context, registrationID string, act domain.Activation) error {
	const stmt = `
UPDATE registrations
SET status = 'ACTIVATED',
	activated_at = $2,
	activation_lat = $3,
	activation_lng = $4,
	activation_distance_miles = $5,
	activation_accuracy_meters = $6,
	activation_expires_at = $7
WHERE id = $1 AND status = 'REGISTERED'`
	tag, err := r.exec(ctx, stmt,
		registrationID, act.At, act.Location.Lat, act.Location.Lng,
		act.DistanceMiles, act.AccuracyMeters, act.ExpiresAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("activate registration: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var status string
	err = r.queryRow(ctx, `SELECT status FROM registrations WHERE id = $1`, registrationID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("read registration status: %w", err)
	}
	if domain.RegistrationStatus(status) == domain.StatusActivated {
		return domain.ErrAlreadyActivated
	}
	return domain.ErrRegistrationExpired
}

func (r *RegistrationRepository) ListRegistrations(ctx context.Context, filter domain.RegistrationFilter) ([]domain.RegistrationDetails, error) {
	const where = `
WHERE ($1::text = '' OR r.status = $1)
  AND ($2::text = ''
	OR strpos(lower(r.first_name), $2) > 0
	OR strpos(lower(r.last_name), $2) > 0
	OR strpos(lower(r.email), $2) > 0
	OR strpos(lower(r.phone), $2) > 0
	OR strpos(lower(r.voucher_code), $2) > 0
	OR strpos(lower(v.name), $2) > 0)
ORDER BY r.created_at DESC, r.id`
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	rows, err := r.query(ctx, detailsQuery+where, string(filter.Status), term)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	items := []domain.RegistrationDetails{}
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		items = append(items, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate registrations: %w", rows.Err())
	}
	return items, nil
}

func (r *RegistrationRepository) RegistrationStats(ctx context.Context) (domain.RegistrationStats, error) {
	const stmt = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status = 'REGISTERED'),
	COUNT(*) FILTER (WHERE status = 'ACTIVATED'),
	COUNT(*) FILTER (WHERE status = 'EXPIRED')
FROM registrations`
	var s domain.RegistrationStats
	if err := r.queryRow(ctx, stmt).Scan(&s.Total, &s.Registered, &s.Activated, &s.Expired); err != nil {
		return domain.RegistrationStats{}, fmt.Errorf("registration stats: %w", err)
	}
	return s, nil
}
