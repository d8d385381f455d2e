package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cimillas/guestlist/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository struct {
	conn
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{conn: conn{pool: pool}}
}

const venueColumns = `id, name, address, vibe_text, lat, lng, geofence_miles, timezone, created_at`

func scanVenue(row pgx.Row) (domain.Venue, error) {
	var (
		v                       domain.Venue
		address, vibe, timezone *string
	)
	err := row.Scan(&v.ID, &v.Name, &address, &vibe, &v.Location.Lat, &v.Location.Lng, &v.GeofenceMiles, &timezone, &v.CreatedAt)
	if err != nil {
		return domain.Venue{}, err
	}
	v.Address = derefString(address)
	v.VibeText = derefString(vibe)
	v.Timezone = derefString(timezone)
	return v, nil
}

func (r *VenueRepository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	rows, err := r.query(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY name ASC`)
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
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate venues: %w", rows.Err())
	}
	return venues, nil
}

func (r *VenueRepository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	v, err := scanVenue(r.queryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Venue{}, domain.ErrInvalidID
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Venue{}, domain.ErrVenueNotFound
		}
		return domain.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *VenueRepository) CreateVenue(ctx context.Context, v domain.Venue) error {
	const stmt = `
INSERT INTO venues (id, name, address, vibe_text, lat, lng, geofence_miles, timezone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.exec(ctx, stmt,
		v.ID, v.Name, nullString(v.Address), nullString(v.VibeText),
		v.Location.Lat, v.Location.Lng, v.GeofenceMiles, nullString(v.Timezone), v.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *VenueRepository) UpdateVenue(ctx context.Context, v domain.Venue) error {
	const stmt = `
UPDATE venues
SET name = $2, address = $3, vibe_text = $4, lat = $5, lng = $6, geofence_miles = $7, timezone = $8
WHERE id = $1`
	tag, err := r.exec(ctx, stmt,
		v.ID, v.Name, nullString(v.Address), nullString(v.VibeText),
		v.Location.Lat, v.Location.Lng, v.GeofenceMiles, nullString(v.Timezone),
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) DeleteVenue(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrVenueInUse
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}
