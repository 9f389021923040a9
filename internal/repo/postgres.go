package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"github.com/jodylarsen/CareConnect/internal/geo"
)

var dialect = goqu.Dialect("postgres")

var providerColumns = []interface{}{
	"id", "name", "category", "address", "phone", "website",
	"lat", "lng", "rating", "is_open", "business_status",
}

type postgresRepository struct {
	db *DB
}

func newPostgresRepository(db *DB) *postgresRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Backend() string { return "postgres" }

func (r *postgresRepository) UpsertProvider(ctx context.Context, p Provider) (Provider, error) {
	if err := validate(p); err != nil {
		return Provider{}, err
	}
	p = normalize(p)

	query, args, err := upsertQuery(p)
	if err != nil {
		return Provider{}, fmt.Errorf("failed to build upsert query: %w", err)
	}
	if _, err := r.db.pool.Exec(ctx, query, args...); err != nil {
		return Provider{}, fmt.Errorf("failed to upsert provider %s: %w", p.ID, err)
	}
	return p, nil
}

func (r *postgresRepository) GetProviderByID(ctx context.Context, id string) (Provider, error) {
	query, args, err := dialect.From("providers").Prepared(true).
		Select(providerColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return Provider{}, fmt.Errorf("failed to build query: %w", err)
	}

	p, err := scanProvider(r.db.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Provider{}, ErrNotFound
	}
	if err != nil {
		return Provider{}, fmt.Errorf("failed to get provider %s: %w", id, err)
	}
	return p, nil
}

func (r *postgresRepository) GetNearbyProviders(ctx context.Context, arg NearbyParams) ([]NearbyProvider, error) {
	query, args, err := nearbyQuery(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to build nearby query: %w", err)
	}

	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby providers: %w", err)
	}
	defer rows.Close()

	radiusKm := arg.RadiusMeters / 1000
	results := []NearbyProvider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		// the bounding box is square; drop its corners
		distance := geo.DistanceKm(arg.Lat, arg.Lng, p.Lat, p.Lng)
		if distance > radiusKm {
			continue
		}
		results = append(results, NearbyProvider{Provider: p, DistanceMeters: distance * 1000})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nearby providers: %w", err)
	}
	return sortAndLimit(results, arg.Limit), nil
}

func upsertQuery(p Provider) (string, []interface{}, error) {
	var isOpen interface{}
	if p.IsOpen != nil {
		isOpen = *p.IsOpen
	}

	record := goqu.Record{
		"id":              p.ID,
		"name":            p.Name,
		"category":        p.Category,
		"address":         p.Address,
		"phone":           p.Phone,
		"website":         p.Website,
		"lat":             p.Lat,
		"lng":             p.Lng,
		"rating":          p.Rating,
		"is_open":         isOpen,
		"business_status": p.BusinessStatus,
	}

	update := goqu.Record{"updated_at": goqu.L("now()")}
	for col := range record {
		if col != "id" {
			update[col] = goqu.L("EXCLUDED." + col)
		}
	}

	return dialect.Insert("providers").Prepared(true).
		Rows(record).
		OnConflict(goqu.DoUpdate("id", update)).
		ToSQL()
}

// nearbyQuery selects candidates inside the radius' bounding box. Exact
// distance filtering and ordering happen after the scan.
func nearbyQuery(arg NearbyParams) (string, []interface{}, error) {
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(arg.Lat, arg.Lng, arg.RadiusMeters/1000)

	health := make([]exp.Expression, 0, len(healthKeywords))
	for _, kw := range healthKeywords {
		health = append(health, goqu.I("category").ILike("%"+kw+"%"))
	}

	ds := dialect.From("providers").Prepared(true).
		Select(providerColumns...).
		Where(
			goqu.Or(health...),
			goqu.I("lat").Between(goqu.Range(minLat, maxLat)),
			goqu.I("lng").Between(goqu.Range(minLng, maxLng)),
		)
	if kw := CategoryKeyword(arg.Type); kw != "" {
		ds = ds.Where(goqu.I("category").ILike("%" + kw + "%"))
	}
	if arg.MinRating > 0 {
		ds = ds.Where(goqu.I("rating").Gte(arg.MinRating))
	}
	return ds.ToSQL()
}

func scanProvider(row pgx.Row) (Provider, error) {
	var p Provider
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Address, &p.Phone, &p.Website,
		&p.Lat, &p.Lng, &p.Rating, &p.IsOpen, &p.BusinessStatus,
	)
	return p, err
}
