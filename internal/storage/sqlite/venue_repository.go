package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cimillas/guestlist/internal/domain"
)

type VenueRepository struct {
	conn
}

const venueColumns = `id, name, address, vibe_text, lat, lng, geofence_miles, timezone, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (domain.Venue, error) {
	var (
		v                       domain.Venue
		address, vibe, timezone sql.NullString
		createdAt               int64
	)
	if err := row.Scan(&v.ID, &v.Name, &address, &vibe, &v.Location.Lat, &v.Location.Lng, &v.GeofenceMiles, &timezone, &createdAt); err != nil {
		return domain.Venue{}, err
	}
	v.Address = address.String
	v.VibeText = vibe.String
	v.Timezone = timezone.String
	v.CreatedAt = fromMillis(createdAt)
	return v, nil
}

func (r *VenueRepository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return venues, nil
}

func (r *VenueRepository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	v, err := scanVenue(r.q(ctx).QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Venue{}, domain.ErrVenueNotFound
		}
		return domain.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *VenueRepository) CreateVenue(ctx context.Context, v domain.Venue) error {
	_, err := r.q(ctx).ExecContext(ctx, `
INSERT INTO venues (id, name, address, vibe_text, lat, lng, geofence_miles, timezone, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, nullString(v.Address), nullString(v.VibeText),
		v.Location.Lat, v.Location.Lng, v.GeofenceMiles, nullString(v.Timezone), toMillis(v.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *VenueRepository) UpdateVenue(ctx context.Context, v domain.Venue) error {
	res, err := r.q(ctx).ExecContext(ctx, `
UPDATE venues
SET name = ?, address = ?, vibe_text = ?, lat = ?, lng = ?, geofence_miles = ?, timezone = ?
WHERE id = ?`,
		v.Name, nullString(v.Address), nullString(v.VibeText),
		v.Location.Lat, v.Location.Lng, v.GeofenceMiles, nullString(v.Timezone), v.ID,
	)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) DeleteVenue(ctx context.Context, id string) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrVenueInUse
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}
