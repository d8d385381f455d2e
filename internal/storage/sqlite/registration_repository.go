package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cimillas/guestlist/internal/domain"
)

type RegistrationRepository struct {
	conn
}

func (r *RegistrationRepository) EnsureEvent(ctx context.Context, candidate domain.Event) (string, error) {
	var id string
	err := r.q(ctx).QueryRowContext(ctx, `
INSERT INTO events (id, venue_id, event_date, title, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (venue_id, event_date) DO UPDATE SET venue_id = excluded.venue_id
RETURNING id`,
		candidate.ID, candidate.VenueID, candidate.Date.Format(domain.DateLayout),
		nullString(candidate.Title), toMillis(candidate.CreatedAt),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", domain.ErrVenueNotFound
		}
		return "", fmt.Errorf("ensure event: %w", err)
	}
	return id, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	p := reg.Party
	_, err := r.q(ctx).ExecContext(ctx, `
INSERT INTO registrations (
	id, event_id, venue_id, first_name, last_name, email, phone,
	men_count, women_count, total_count, bottle_service, bottle_budget, instagram,
	interest_limo, interest_boat, celebration_type, celebration_other,
	voucher_code, qr_token, status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.EventID, reg.VenueID, reg.FirstName, reg.LastName, reg.Email, reg.Phone,
		nullInt(p.MenCount), nullInt(p.WomenCount), nullInt(p.TotalCount),
		boolInt(p.BottleService), nullString(p.BottleBudget), nullString(p.Instagram),
		boolInt(p.InterestLimo), boolInt(p.InterestBoat), nullString(p.CelebrationType), nullString(p.CelebrationOther),
		reg.VoucherCode, reg.QRToken, string(reg.Status), toMillis(reg.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeCollision
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
	r.id, r.event_id, r.venue_id, r.first_name, r.last_name, r.email, r.phone,
	r.men_count, r.women_count, r.total_count, r.bottle_service, r.bottle_budget, r.instagram,
	r.interest_limo, r.interest_boat, r.celebration_type, r.celebration_other,
	r.voucher_code, r.qr_token, r.status, r.activated_at, r.activation_lat, r.activation_lng,
	r.activation_distance_miles, r.activation_accuracy_meters, r.activation_expires_at, r.created_at,
	v.id, v.name, v.address, v.vibe_text, v.lat, v.lng, v.geofence_miles, v.timezone, v.created_at,
	e.id, e.event_date, e.title, e.created_at
FROM registrations r
JOIN venues v ON v.id = r.venue_id
LEFT JOIN events e ON e.id = r.event_id`

func scanDetails(row rowScanner) (domain.RegistrationDetails, error) {
	var (
		d                                     domain.RegistrationDetails
		status                                string
		men, women, total                     sql.NullInt64
		bottle, limo, boat                    int
		bottleBudget, instagram               sql.NullString
		celebrationType, celebrationOther     sql.NullString
		activatedAt, expiresAt                sql.NullInt64
		actLat, actLng, actDistance, accuracy sql.NullFloat64
		createdAt, venueCreated               int64
		address, vibe, timezone               sql.NullString
		eventID, eventDate, eventTitle        sql.NullString
		eventCreated                          sql.NullInt64
	)
	err := row.Scan(
		&d.ID, &d.EventID, &d.VenueID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&men, &women, &total, &bottle, &bottleBudget, &instagram,
		&limo, &boat, &celebrationType, &celebrationOther,
		&d.VoucherCode, &d.QRToken, &status, &activatedAt, &actLat, &actLng,
		&actDistance, &accuracy, &expiresAt, &createdAt,
		&d.Venue.ID, &d.Venue.Name, &address, &vibe, &d.Venue.Location.Lat, &d.Venue.Location.Lng,
		&d.Venue.GeofenceMiles, &timezone, &venueCreated,
		&eventID, &eventDate, &eventTitle, &eventCreated,
	)
	if err != nil {
		return domain.RegistrationDetails{}, err
	}

	d.Status = domain.RegistrationStatus(status)
	d.CreatedAt = fromMillis(createdAt)
	d.Party = domain.Party{
		MenCount:         intPtr(men),
		WomenCount:       intPtr(women),
		TotalCount:       intPtr(total),
		BottleService:    bottle != 0,
		BottleBudget:     bottleBudget.String,
		Instagram:        instagram.String,
		InterestLimo:     limo != 0,
		InterestBoat:     boat != 0,
		CelebrationType:  celebrationType.String,
		CelebrationOther: celebrationOther.String,
	}
	d.Venue.Address = address.String
	d.Venue.VibeText = vibe.String
	d.Venue.Timezone = timezone.String
	d.Venue.CreatedAt = fromMillis(venueCreated)

	if activatedAt.Valid {
		act := &domain.Activation{
			At:            fromMillis(activatedAt.Int64),
			Location:      domain.Coordinates{Lat: actLat.Float64, Lng: actLng.Float64},
			DistanceMiles: actDistance.Float64,
		}
		if accuracy.Valid {
			v := accuracy.Float64
			act.AccuracyMeters = &v
		}
		if expiresAt.Valid {
			act.ExpiresAt = fromMillis(expiresAt.Int64)
		}
		d.Activation = act
	}

	if eventID.Valid {
		ev := &domain.Event{ID: eventID.String, VenueID: d.VenueID, Title: eventTitle.String}
		if eventDate.Valid {
			if date, err := domain.ParseDate(eventDate.String); err == nil {
				ev.Date = date
			}
		}
		if eventCreated.Valid {
			ev.CreatedAt = fromMillis(eventCreated.Int64)
		}
		d.Event = ev
	}
	return d, nil
}

func (r *RegistrationRepository) findOne(ctx context.Context, where string, arg any) (domain.RegistrationDetails, error) {
	d, err := scanDetails(r.q(ctx).QueryRowContext(ctx, detailsQuery+` WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RegistrationDetails{}, domain.ErrRegistrationNotFound
		}
		return domain.RegistrationDetails{}, fmt.Errorf("find registration: %w", err)
	}
	return d, nil
}

func (r *RegistrationRepository) FindByVoucherCode(ctx context.Context, code string) (domain.RegistrationDetails, error) {
	return r.findOne(ctx, `r.voucher_code = ?`, code)
}

func (r *RegistrationRepository) FindByQRToken(ctx context.Context, token string) (domain.RegistrationDetails, error) {
	return r.findOne(ctx, `r.qr_token = ?`, token)
}

func (r *RegistrationRepository) Activate(ctx context.Context, registrationID string, act domain.Activation) error {
	q := r.q(ctx)
	res, err := q.ExecContext(ctx, `
UPDATE registrations
SET status = 'ACTIVATED',
	activated_at = ?,
	activation_lat = ?,
	activation_lng = ?,
	activation_distance_miles = ?,
	activation_accuracy_meters = ?,
	activation_expires_at = ?
WHERE id = ? AND status = 'REGISTERED'`,
		toMillis(act.At), act.Location.Lat, act.Location.Lng,
		act.DistanceMiles, nullFloat(act.AccuracyMeters), toMillis(act.ExpiresAt),
		registrationID,
	)
	if err != nil {
		return fmt.Errorf("activate registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	var status string
	if err := q.QueryRowContext(ctx, `SELECT status FROM registrations WHERE id = ?`, registrationID).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
WHERE (?1 = '' OR r.status = ?1)
  AND (?2 = ''
	OR instr(lower(r.first_name), ?2) > 0
	OR instr(lower(r.last_name), ?2) > 0
	OR instr(lower(r.email), ?2) > 0
	OR instr(lower(r.phone), ?2) > 0
	OR instr(lower(r.voucher_code), ?2) > 0
	OR instr(lower(v.name), ?2) > 0)
ORDER BY r.created_at DESC, r.id`
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	rows, err := r.q(ctx).QueryContext(ctx, detailsQuery+where, string(filter.Status), term)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return items, nil
}

func (r *RegistrationRepository) RegistrationStats(ctx context.Context) (domain.RegistrationStats, error) {
	var s domain.RegistrationStats
	err := r.q(ctx).QueryRowContext(ctx, `
SELECT
	COUNT(*),
	COALESCE(SUM(status = 'REGISTERED'), 0),
	COALESCE(SUM(status = 'ACTIVATED'), 0),
	COALESCE(SUM(status = 'EXPIRED'), 0)
FROM registrations`).Scan(&s.Total, &s.Registered, &s.Activated, &s.Expired)
	if err != nil {
		return domain.RegistrationStats{}, fmt.Errorf("registration stats: %w", err)
	}
	return s, nil
}
