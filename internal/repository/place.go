package repository

import (
	"context"
	"errors"
	"mapify/internal/logger"
	"mapify/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const placeColumns = `id, name, type, address, lat, lon, description, image_url, created_at, created_by`

type PlaceRepository struct {
	db *pgxpool.Pool
}

func NewPlaceRepository(db *pgxpool.Pool) *PlaceRepository {
	return &PlaceRepository{db: db}
}

func scanPlace(row pgx.Row) (*models.Place, error) {
	var p models.Place
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.Lat, &p.Lon, &p.Description, &p.ImageURL, &p.CreatedAt, &p.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaceRepository) ListPlaces(ctx context.Context) ([]*models.Place, error) {
	rows, err := r.db.Query(ctx, `SELECT `+placeColumns+` FROM places ORDER BY id`)
	if err != nil {
		logger.Log.Error("Ошибка получения мест (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	places := make([]*models.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (r *PlaceRepository) GetPlace(ctx context.Context, id int64) (*models.Place, error) {
	p, err := scanPlace(r.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PlaceRepository) CreatePlace(ctx context.Context, place *models.Place) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO places (name, type, address, lat, lon, description, image_url, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		place.Name, place.Type, place.Address, place.Lat, place.Lon,
		place.Description, place.ImageURL, place.CreatedAt, place.CreatedBy,
	).Scan(&place.ID)
}

func (r *PlaceRepository) UpdatePlace(ctx context.Context, id int64, in models.PlaceInput) (*models.Place, error) {
	p, err := scanPlace(r.db.QueryRow(ctx, `
		UPDATE places SET
			name        = COALESCE($2, name),
			type        = COALESCE($3, type),
			address     = COALESCE($4, address),
			lat         = COALESCE($5, lat),
			lon         = COALESCE($6, lon),
			description = COALESCE($7, description),
			image_url   = COALESCE($8, image_url)
		WHERE id = $1
		RETURNING `+placeColumns,
		id, in.Name, in.Type, in.Address, in.Lat, in.Lon, in.Description, in.ImageURL,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PlaceRepository) DeletePlace(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlaceRepository) CountPlaces(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM places`).Scan(&n)
	return n, err
}

// NewPostgresRepositories собирает репозитории поверх пула pgx.
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(db),
		PasswordResets: NewPasswordResetRepository(db),
		Places:         NewPlaceRepository(db),
	}
}
