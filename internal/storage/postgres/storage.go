package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/tidex114/est-backend/internal/domain/errors"
	"github.com/tidex114/est-backend/internal/domain/model"
	"github.com/tidex114/est-backend/internal/domain/repository"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool       pgxPool
	logger     *slog.Logger
	maxRetries int
}

type offerRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, maxRetries int, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, maxRetries: maxRetries}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Offers returns the offer repository.
func (s *Storage) Offers() repository.OfferRepository {
	return &offerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS offers (
            id UUID PRIMARY KEY,
            place_id UUID NOT NULL,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            tags TEXT[] NOT NULL DEFAULT '{}',
            allergens TEXT[] NOT NULL DEFAULT '{}',
            image_urls TEXT[] NOT NULL DEFAULT '{}',
            price_amount NUMERIC(12,2) NOT NULL CHECK (price_amount >= 0),
            price_currency CHAR(3) NOT NULL,
            original_price_amount NUMERIC(12,2) NOT NULL CHECK (original_price_amount >= 0),
            original_price_currency CHAR(3) NOT NULL,
            quantity_total INTEGER NOT NULL CHECK (quantity_total >= 1),
            quantity_available INTEGER NOT NULL CHECK (quantity_available >= 0 AND quantity_available <= quantity_total),
            pickup_start TIMESTAMPTZ NOT NULL,
            pickup_end TIMESTAMPTZ NOT NULL CHECK (pickup_end > pickup_start),
            expires_at TIMESTAMPTZ,
            status TEXT NOT NULL CHECK (status IN ('draft', 'active', 'paused', 'sold_out', 'expired', 'cancelled')),
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_offers_place ON offers(place_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_offers_active ON offers(pickup_end) WHERE status = 'active'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const offerColumns = `id, place_id, title, description, tags, allergens, image_urls,
                      price_amount::text, price_currency, original_price_amount::text, original_price_currency,
                      quantity_total, quantity_available, pickup_start, pickup_end, expires_at,
                      status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (model.Offer, error) {
	var (
		o                       model.Offer
		priceAmount, priceCur   string
		originalAmount, origCur string
		status                  string
		expiresAt               *time.Time
	)
	err := row.Scan(&o.ID, &o.PlaceID, &o.Title, &o.Description, &o.Tags, &o.Allergens, &o.ImageURLs,
		&priceAmount, &priceCur, &originalAmount, &origCur,
		&o.QuantityTotal, &o.QuantityAvailable, &o.PickupStart, &o.PickupEnd, &expiresAt,
		&status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return model.Offer{}, err
	}

	if o.Price, err = model.ParseMoney(priceAmount, priceCur); err != nil {
		return model.Offer{}, fmt.Errorf("decode price: %w", err)
	}
	if o.OriginalPrice, err = model.ParseMoney(originalAmount, origCur); err != nil {
		return model.Offer{}, fmt.Errorf("decode original price: %w", err)
	}
	if o.Status, err = model.ParseOfferStatus(status); err != nil {
		return model.Offer{}, fmt.Errorf("decode status: %w", err)
	}
	o.PickupStart = o.PickupStart.UTC()
	o.PickupEnd = o.PickupEnd.UTC()
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	if expiresAt != nil {
		at := expiresAt.UTC()
		o.ExpiresAt = &at
	}
	return o, nil
}

func (r *offerRepository) Create(ctx context.Context, o model.Offer) error {
	const query = `INSERT INTO offers (id, place_id, title, description, tags, allergens, image_urls,
                       price_amount, price_currency, original_price_amount, original_price_currency,
                       quantity_total, quantity_available, pickup_start, pickup_end, expires_at,
                       status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.storage.pool.Exec(ctx, query, o.ID, o.PlaceID, o.Title, o.Description,
		textArray(o.Tags), textArray(o.Allergens), textArray(o.ImageURLs),
		o.Price.Amount.StringFixed(2), o.Price.Currency, o.OriginalPrice.Amount.StringFixed(2), o.OriginalPrice.Currency,
		o.QuantityTotal, o.QuantityAvailable, o.PickupStart, o.PickupEnd, o.ExpiresAt,
		string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return &domainErrors.ConflictError{Detail: "offer " + o.ID.String() + " already exists"}
		}
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

func (r *offerRepository) Get(ctx context.Context, id uuid.UUID) (model.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id=$1`
	o, err := scanOffer(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Offer{}, domainErrors.ErrNotFound
		}
		return model.Offer{}, err
	}
	return o, nil
}

func (r *offerRepository) Mutate(ctx context.Context, id uuid.UUID, fn repository.MutateFunc) (model.Offer, error) {
	var (
		result model.Offer
		fnErr  error
	)
	err := r.storage.withRetry(ctx, func(tx pgx.Tx) error {
		fnErr = nil
		current, err := lockOffer(ctx, tx, id)
		if err != nil {
			return err
		}

		next, persist, err := fn(current)
		if !persist {
			result = current
			return err
		}
		if err := updateOffer(ctx, tx, next); err != nil {
			return err
		}
		result = next
		fnErr = err
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, fnErr
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID, guard func(model.Offer) error) error {
	return r.storage.withRetry(ctx, func(tx pgx.Tx) error {
		current, err := lockOffer(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := guard(current); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM offers WHERE id=$1`, id); err != nil {
			return fmt.Errorf("delete offer: %w", err)
		}
		return nil
	})
}

func (r *offerRepository) ListActive(ctx context.Context, now time.Time, page repository.Page) ([]model.Offer, error) {
	query := `SELECT ` + offerColumns + `
              FROM offers
              WHERE status = 'active' AND COALESCE(expires_at, pickup_end) > $1
              ORDER BY pickup_end, id
              LIMIT $2 OFFSET $3`
	return r.list(ctx, query, now, page.Limit, page.Offset)
}

func (r *offerRepository) ListByPlace(ctx context.Context, placeID uuid.UUID, page repository.Page) ([]model.Offer, error) {
	query := `SELECT ` + offerColumns + `
              FROM offers
              WHERE place_id=$1
              ORDER BY created_at DESC, id
              LIMIT $2 OFFSET $3`
	return r.list(ctx, query, placeID, page.Limit, page.Offset)
}

func (r *offerRepository) list(ctx context.Context, query string, args ...any) ([]model.Offer, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func lockOffer(ctx context.Context, tx pgx.Tx, id uuid.UUID) (model.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id=$1 FOR UPDATE`
	o, err := scanOffer(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Offer{}, domainErrors.ErrNotFound
		}
		return model.Offer{}, err
	}
	return o, nil
}

func updateOffer(ctx context.Context, tx pgx.Tx, o model.Offer) error {
	const query = `UPDATE offers SET title=$2, description=$3, tags=$4, allergens=$5, image_urls=$6,
                       price_amount=$7, price_currency=$8, original_price_amount=$9, original_price_currency=$10,
                       quantity_total=$11, quantity_available=$12, pickup_start=$13, pickup_end=$14, expires_at=$15,
                       status=$16, updated_at=$17
                   WHERE id=$1`
	_, err := tx.Exec(ctx, query, o.ID, o.Title, o.Description,
		textArray(o.Tags), textArray(o.Allergens), textArray(o.ImageURLs),
		o.Price.Amount.StringFixed(2), o.Price.Currency, o.OriginalPrice.Amount.StringFixed(2), o.OriginalPrice.Currency,
		o.QuantityTotal, o.QuantityAvailable, o.PickupStart, o.PickupEnd, o.ExpiresAt,
		string(o.Status), o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	return nil
}

// textArray keeps NOT NULL array columns from receiving NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// withRetry reruns the transaction on serialization failures and deadlocks.
func (s *Storage) withRetry(ctx context.Context, fn func(pgx.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := s.WithinTransaction(ctx, fn)
		if err == nil || !retryable(err) || attempt >= s.maxRetries {
			return err
		}
		s.logger.Warn("retrying offer transaction",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
