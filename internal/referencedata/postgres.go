package referencedata

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"precheck/internal/referencedata/metrics"
	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
	"precheck/pkg/platform/tx"
)

const sourcePostgres = "postgres"

//go:embed schema.sql
var schemaSQL string

// OpenPostgres opens a connection pool through the pgx stdlib driver and
// checks it is reachable.
func OpenPostgres(ctx context.Context, dsn string, maxOpen, maxIdle int, maxLifetime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresGateway reads reference data from PostgreSQL tables.
type PostgresGateway struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgresGateway constructs a PostgreSQL-backed gateway.
func NewPostgresGateway(db *sql.DB, metrics *metrics.Metrics) *PostgresGateway {
	return &PostgresGateway{db: db, metrics: metrics}
}

// EnsureSchema creates the reference data tables if they do not exist.
func (g *PostgresGateway) EnsureSchema(ctx context.Context) error {
	if _, err := g.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure reference data schema: %w", err)
	}
	return nil
}

// Seed replaces the table contents with catalogue in one transaction.
func (g *PostgresGateway) Seed(ctx context.Context, catalogue *Catalogue) error {
	if catalogue == nil {
		return fmt.Errorf("catalogue is required")
	}
	steps := []struct {
		name string
		fn   func(context.Context, *Catalogue) error
	}{
		{"truncate", g.truncate},
		{"country_nationalities", g.seedNationalities},
		{"bail_statuses", g.seedBailStatuses},
		{"ethnicities", g.seedEthnicities},
		{"offender_codes", g.seedOffenderCodes},
		{"hearing_types", g.seedHearingTypes},
		{"organisation_units", g.seedOrganisationUnits},
		{"document_types", g.seedDocumentTypes},
		{"prosecutors", g.seedProsecutors},
	}
	return tx.Run(ctx, g.db, func(ctx context.Context) error {
		for _, step := range steps {
			if err := step.fn(ctx, catalogue); err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
		}
		return nil
	})
}

func (g *PostgresGateway) conn(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return g.db
}

func (g *PostgresGateway) CountryNationalities(ctx context.Context) (out []ports.CountryNationality, err error) {
	defer g.observe("country_nationalities", time.Now(), &err)
	err = g.queryEach(ctx, "country_nationalities",
		`SELECT id, iso_code, cjs_code, nationality, country_name FROM country_nationalities ORDER BY country_name, id`,
		nil,
		func(rows *sql.Rows) error {
			var n ports.CountryNationality
			if err := rows.Scan(&n.ID, &n.IsoCode, &n.CJSCode, &n.Nationality, &n.CountryName); err != nil {
				return err
			}
			out = append(out, n)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) BailStatuses(ctx context.Context) (out []ports.BailStatus, err error) {
	defer g.observe("bail_statuses", time.Now(), &err)
	err = g.queryEach(ctx, "bail_statuses",
		`SELECT id, status_code, description, sequence, valid_from FROM bail_statuses ORDER BY sequence, id`,
		nil,
		func(rows *sql.Rows) error {
			var b ports.BailStatus
			if err := rows.Scan(&b.ID, &b.StatusCode, &b.Description, &b.Sequence, &b.ValidFrom); err != nil {
				return err
			}
			out = append(out, b)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) ObservedEthnicities(ctx context.Context) ([]ports.Ethnicity, error) {
	return g.ethnicities(ctx, "observed")
}

func (g *PostgresGateway) SelfDefinedEthnicities(ctx context.Context) ([]ports.Ethnicity, error) {
	return g.ethnicities(ctx, "self_defined")
}

func (g *PostgresGateway) ethnicities(ctx context.Context, kind string) (out []ports.Ethnicity, err error) {
	lookup := kind + "_ethnicities"
	defer g.observe(lookup, time.Now(), &err)
	err = g.queryEach(ctx, lookup,
		`SELECT id, code, cjs_code, description, sequence FROM ethnicities WHERE kind = $1 ORDER BY sequence, id`,
		[]any{kind},
		func(rows *sql.Rows) error {
			var e ports.Ethnicity
			if err := rows.Scan(&e.ID, &e.Code, &e.CJSCode, &e.Description, &e.Sequence); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) OffenderCodes(ctx context.Context) (out []ports.OffenderCode, err error) {
	defer g.observe("offender_codes", time.Now(), &err)
	err = g.queryEach(ctx, "offender_codes",
		`SELECT id, code, description, valid_from FROM offender_codes ORDER BY code, id`,
		nil,
		func(rows *sql.Rows) error {
			var o ports.OffenderCode
			if err := rows.Scan(&o.ID, &o.Code, &o.Description, &o.ValidFrom); err != nil {
				return err
			}
			out = append(out, o)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) HearingTypes(ctx context.Context) (out []ports.HearingType, err error) {
	defer g.observe("hearing_types", time.Now(), &err)
	err = g.queryEach(ctx, "hearing_types",
		`SELECT id, code, description, sequence FROM hearing_types ORDER BY sequence, id`,
		nil,
		func(rows *sql.Rows) error {
			var h ports.HearingType
			if err := rows.Scan(&h.ID, &h.Code, &h.Description, &h.Sequence); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) DocumentTypeAccess(ctx context.Context) (out []ports.DocumentTypeAccess, err error) {
	defer g.observe("document_types", time.Now(), &err)
	err = g.queryEach(ctx, "document_types",
		`SELECT id, document_type, document_category, application_type, sequence, valid_from, valid_to
		 FROM document_types ORDER BY sequence, id`,
		nil,
		func(rows *sql.Rows) error {
			var d ports.DocumentTypeAccess
			if err := rows.Scan(&d.ID, &d.DocumentType, &d.DocumentCategory, &d.ApplicationType, &d.Sequence, &d.ValidFrom, &d.ValidTo); err != nil {
				return err
			}
			out = append(out, d)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) OrganisationUnits(ctx context.Context, ouCode string) (out []ports.OrganisationUnit, err error) {
	defer g.observe("organisation_units", time.Now(), &err)
	err = g.queryEach(ctx, "organisation_units",
		`SELECT id, ou_code, name, address1, postcode FROM organisation_units
		 WHERE upper(ou_code) = $1 ORDER BY id`,
		[]any{normalizeOU(ouCode)},
		func(rows *sql.Rows) error {
			var u ports.OrganisationUnit
			if err := rows.Scan(&u.ID, &u.OUCode, &u.Name, &u.Address1, &u.Postcode); err != nil {
				return err
			}
			out = append(out, u)
			return nil
		})
	return out, err
}

func (g *PostgresGateway) OrganisationUnitWithCourtrooms(ctx context.Context, ouCode string) (_ *ports.CourtCentre, err error) {
	defer g.observe("court_centres", time.Now(), &err)

	var (
		centre    ports.CourtCentre
		roomIDs   []string
		roomNames []string
	)
	row := g.conn(ctx).QueryRowContext(ctx, `
		SELECT o.id, o.ou_code, o.name, o.address1, o.postcode,
		       COALESCE(array_agg(c.id ORDER BY c.name, c.id) FILTER (WHERE c.id IS NOT NULL), '{}'),
		       COALESCE(array_agg(c.name ORDER BY c.name, c.id) FILTER (WHERE c.id IS NOT NULL), '{}')
		FROM organisation_units o
		LEFT JOIN courtrooms c ON c.organisation_unit_id = o.id
		WHERE upper(o.ou_code) = $1 AND o.court_centre
		GROUP BY o.id, o.ou_code, o.name, o.address1, o.postcode
		ORDER BY o.id
		LIMIT 1`, normalizeOU(ouCode))
	err = row.Scan(&centre.ID, &centre.OUCode, &centre.Name, &centre.Address1, &centre.Postcode,
		pq.Array(&roomIDs), pq.Array(&roomNames))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, NewGatewayError(ErrorOutage, sourcePostgres, "court_centres", err)
	}
	for i := range roomIDs {
		centre.Courtrooms = append(centre.Courtrooms, ports.Courtroom{ID: roomIDs[i], Name: roomNames[i]})
	}
	return &centre, nil
}

func (g *PostgresGateway) ProsecutorByOUCode(ctx context.Context, ouCode string) (_ *ports.Prosecutor, err error) {
	defer g.observe("prosecutors", time.Now(), &err)
	return g.prosecutor(ctx,
		`SELECT id, ou_code, short_name, full_name FROM prosecutors WHERE upper(ou_code) = $1 LIMIT 1`,
		normalizeOU(ouCode))
}

func (g *PostgresGateway) ProsecutorByID(ctx context.Context, prosecutorID id.ProsecutorID) (_ *ports.Prosecutor, err error) {
	defer g.observe("prosecutors", time.Now(), &err)
	return g.prosecutor(ctx,
		`SELECT id, ou_code, short_name, full_name FROM prosecutors WHERE id = $1`,
		prosecutorID.String())
}

func (g *PostgresGateway) prosecutor(ctx context.Context, query string, arg any) (*ports.Prosecutor, error) {
	var (
		p   ports.Prosecutor
		raw string
	)
	err := g.conn(ctx).QueryRowContext(ctx, query, arg).Scan(&raw, &p.OUCode, &p.ShortName, &p.FullName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, NewGatewayError(ErrorOutage, sourcePostgres, "prosecutors", err)
	}
	if err := p.ID.UnmarshalText([]byte(raw)); err != nil {
		return nil, NewGatewayError(ErrorBadData, sourcePostgres, "prosecutors", err)
	}
	return &p, nil
}

// queryEach runs query and hands every row to scan. Scan failures are bad
// data; everything else is an outage.
func (g *PostgresGateway) queryEach(ctx context.Context, lookup, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := g.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return NewGatewayError(ErrorOutage, sourcePostgres, lookup, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return NewGatewayError(ErrorBadData, sourcePostgres, lookup, err)
		}
	}
	if err := rows.Err(); err != nil {
		return NewGatewayError(ErrorOutage, sourcePostgres, lookup, err)
	}
	return nil
}

func (g *PostgresGateway) observe(lookup string, start time.Time, errp *error) {
	g.metrics.ObserveLookup(sourcePostgres, lookup, time.Since(start).Seconds())
	if *errp != nil {
		g.metrics.RecordLookupError(sourcePostgres, string(CategoryOf(*errp)))
	}
}

// ===== seeding =====

func (g *PostgresGateway) truncate(ctx context.Context, _ *Catalogue) error {
	_, err := g.conn(ctx).ExecContext(ctx, `TRUNCATE country_nationalities, bail_statuses, ethnicities,
		offender_codes, hearing_types, courtrooms, organisation_units, document_types, prosecutors`)
	return err
}

func (g *PostgresGateway) seedNationalities(ctx context.Context, c *Catalogue) error {
	var ids, iso, cjs, nationality, country []string
	for _, n := range c.CountryNationalities {
		ids = append(ids, n.ID)
		iso = append(iso, n.IsoCode)
		cjs = append(cjs, n.CJSCode)
		nationality = append(nationality, n.Nationality)
		country = append(country, n.CountryName)
	}
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO country_nationalities (id, iso_code, cjs_code, nationality, country_name)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[])`,
		pq.Array(ids), pq.Array(iso), pq.Array(cjs), pq.Array(nationality), pq.Array(country))
	return err
}

func (g *PostgresGateway) seedBailStatuses(ctx context.Context, c *Catalogue) error {
	var ids, codes, descriptions, validFrom []string
	var sequences []int64
	for _, b := range c.BailStatuses {
		ids = append(ids, b.ID)
		codes = append(codes, b.StatusCode)
		descriptions = append(descriptions, b.Description)
		sequences = append(sequences, int64(b.Sequence))
		validFrom = append(validFrom, b.ValidFrom)
	}
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO bail_statuses (id, status_code, description, sequence, valid_from)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::int[], $5::text[])`,
		pq.Array(ids), pq.Array(codes), pq.Array(descriptions), pq.Array(sequences), pq.Array(validFrom))
	return err
}

func (g *PostgresGateway) seedEthnicities(ctx context.Context, c *Catalogue) error {
	var ids, kinds, codes, cjs, descriptions []string
	var sequences []int64
	add := func(kind string, list []ports.Ethnicity) {
		for _, e := range list {
			ids = append(ids, e.ID)
			kinds = append(kinds, kind)
			codes = append(codes, e.Code)
			cjs = append(cjs, e.CJSCode)
			descriptions = append(descriptions, e.Description)
			sequences = append(sequences, int64(e.Sequence))
		}
	}
	add("observed", c.ObservedEthnicities)
	add("self_defined", c.SelfDefinedEthnicities)
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO ethnicities (id, kind, code, cjs_code, description, sequence)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::int[])`,
		pq.Array(ids), pq.Array(kinds), pq.Array(codes), pq.Array(cjs), pq.Array(descriptions), pq.Array(sequences))
	return err
}

func (g *PostgresGateway) seedOffenderCodes(ctx context.Context, c *Catalogue) error {
	var ids, codes, descriptions, validFrom []string
	for _, o := range c.OffenderCodes {
		ids = append(ids, o.ID)
		codes = append(codes, o.Code)
		descriptions = append(descriptions, o.Description)
		validFrom = append(validFrom, o.ValidFrom)
	}
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO offender_codes (id, code, description, valid_from)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[])`,
		pq.Array(ids), pq.Array(codes), pq.Array(descriptions), pq.Array(validFrom))
	return err
}

func (g *PostgresGateway) seedHearingTypes(ctx context.Context, c *Catalogue) error {
	var ids, codes, descriptions []string
	var sequences []int64
	for _, h := range c.HearingTypes {
		ids = append(ids, h.ID)
		codes = append(codes, h.Code)
		descriptions = append(descriptions, h.Description)
		sequences = append(sequences, int64(h.Sequence))
	}
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO hearing_types (id, code, description, sequence)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::int[])`,
		pq.Array(ids), pq.Array(codes), pq.Array(descriptions), pq.Array(sequences))
	return err
}

// seedOrganisationUnits writes plain units first, then court centres, which
// upsert over a unit sharing their id and carry the courtrooms.
func (g *PostgresGateway) seedOrganisationUnits(ctx context.Context, c *Catalogue) error {
	conn := g.conn(ctx)
	const upsert = `
		INSERT INTO organisation_units (id, ou_code, name, address1, postcode, court_centre)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET ou_code = EXCLUDED.ou_code, name = EXCLUDED.name,
			address1 = EXCLUDED.address1, postcode = EXCLUDED.postcode,
			court_centre = organisation_units.court_centre OR EXCLUDED.court_centre`
	for _, u := range c.OrganisationUnits {
		if _, err := conn.ExecContext(ctx, upsert, unitID(u), u.OUCode, u.Name, u.Address1, u.Postcode, false); err != nil {
			return err
		}
	}
	for _, centre := range c.CourtCentres {
		unit := centre.OrganisationUnit
		if _, err := conn.ExecContext(ctx, upsert, unitID(unit), unit.OUCode, unit.Name, unit.Address1, unit.Postcode, true); err != nil {
			return err
		}
		for _, room := range centre.Courtrooms {
			if _, err := conn.ExecContext(ctx,
				`INSERT INTO courtrooms (id, organisation_unit_id, name) VALUES ($1, $2, $3)`,
				room.ID, unitID(unit), room.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// unitID falls back to the OU code for units listed without an id.
func unitID(u ports.OrganisationUnit) string {
	if u.ID != "" {
		return u.ID
	}
	return normalizeOU(u.OUCode)
}

func (g *PostgresGateway) seedDocumentTypes(ctx context.Context, c *Catalogue) error {
	var ids, types, categories, validFrom, validTo []string
	var applications []bool
	var sequences []int64
	for _, d := range c.DocumentTypes {
		ids = append(ids, d.ID)
		types = append(types, d.DocumentType)
		categories = append(categories, d.DocumentCategory)
		applications = append(applications, d.ApplicationType)
		sequences = append(sequences, int64(d.Sequence))
		validFrom = append(validFrom, d.ValidFrom)
		validTo = append(validTo, d.ValidTo)
	}
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO document_types (id, document_type, document_category, application_type, sequence, valid_from, valid_to)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::bool[], $5::int[], $6::text[], $7::text[])`,
		pq.Array(ids), pq.Array(types), pq.Array(categories), pq.Array(applications),
		pq.Array(sequences), pq.Array(validFrom), pq.Array(validTo))
	return err
}

func (g *PostgresGateway) seedProsecutors(ctx context.Context, c *Catalogue) error {
	var ids, ous, shortNames, fullNames []string
	for _, p := range c.Prosecutors {
		ids = append(ids, p.ID.String())
		ous = append(ous, p.OUCode)
		shortNames = append(shortNames, p.ShortName)
		fullNames = append(fullNames, p.FullName)
	}
	_, err := g.conn(ctx).ExecContext(ctx, `
		INSERT INTO prosecutors (id, ou_code, short_name, full_name)
		SELECT * FROM unnest($1::uuid[], $2::text[], $3::text[], $4::text[])`,
		pq.Array(ids), pq.Array(ous), pq.Array(shortNames), pq.Array(fullNames))
	return err
}
