package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	CSVPath     string
	DatabaseURL string
	Wipe        bool
}

// rawColumns is the kits_raw layout, all text. Order matters for CopyFrom.
var rawColumns = []string{
	"n_number", "serial_number", "mfr_mdl_code", "mfr", "model",
	"acftcat", "no_seats", "ac_weight", "engcat", "surfcat", "no_eng",
	"city", "state", "zip_min", "kitmfg", "kitmdl", "mode_s_code",
	"year_mfr", "last_action_date", "cert_issue_date", "air_worth_date",
}

// curatedStatements rebuilds the typed kits table from kits_raw. Integers
// only survive a digit-regex guard, dates go through NULLIF, and anything
// that fails a cast becomes NULL rather than zero.
var curatedStatements = []string{
	`DROP TABLE IF EXISTS kits`,
	`CREATE TABLE kits AS
	SELECT
		k.n_number::text      AS n_number,
		k.serial_number::text AS serial_number,
		k.mfr_mdl_code::text  AS mfr_mdl_code,
		k.mfr::text           AS mfr,
		k.model::text         AS model,
		k.acftcat::text       AS acftcat,
		k.ac_weight::text     AS ac_weight,
		k.engcat::text        AS engcat,
		k.surfcat::text       AS surfcat,
		k.kitmfg::text        AS kitmfg,
		k.kitmdl::text        AS kitmdl,

		CASE WHEN (k.no_seats)::text ~ '^[0-9]+$'
			THEN (k.no_seats)::int ELSE NULL END AS no_seats,

		CASE WHEN (k.no_eng)::text ~ '^[0-9]+$'
			THEN (k.no_eng)::int ELSE NULL END   AS no_eng,

		k.city::text          AS city,
		UPPER(k.state::text)  AS state,
		k.zip_min::text       AS zip_min,
		k.mode_s_code::text   AS mode_s_code,

		CASE WHEN (k.year_mfr)::text ~ '^[0-9]{4}$'
			THEN (k.year_mfr)::int ELSE NULL END AS year_mfr,
		NULLIF(k.last_action_date::text, '')::date AS last_action_date,
		NULLIF(k.cert_issue_date::text, '')::date  AS cert_issue_date,
		NULLIF(k.air_worth_date::text, '')::date   AS air_worth_date

	FROM kits_raw k`,
	`ALTER TABLE kits ADD PRIMARY KEY (n_number)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_mfr      ON kits (mfr)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_model    ON kits (model)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_state    ON kits (state)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_acftcat  ON kits (acftcat)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_engcat   ON kits (engcat)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_year_mfr ON kits (year_mfr)`,
	`CREATE INDEX IF NOT EXISTS idx_kits_kitmfg   ON kits (kitmfg)`,
}

// Run replaces the kits tables from the extract at cfg.CSVPath: parse, bulk
// load kits_raw over pgx CopyFrom, rebuild the curated kits table, then
// append an audit row. Readers mid-rebuild may see a partial table; the job
// is expected to run exclusively.
func Run(cfg Config) error {
	if !cfg.Wipe {
		return errors.New("refusing to run: set Wipe=true (this importer replaces the kits tables)")
	}

	started := time.Now()

	rows, warnings, err := ParseCSV(cfg.CSVPath)
	if err != nil {
		return err
	}
	log.Printf("[kits-import] parsed %d rows (%d warnings) from %s", len(rows), len(warnings), cfg.CSVPath)

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	if err := loadRaw(ctx, conn, rows); err != nil {
		return err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return err
	}

	for _, stmt := range curatedStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("build curated table: %w", err)
		}
	}
	log.Println("[kits-import] built curated kits table")

	var curated int64
	if err := db.Table("kits").Count(&curated).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(&IngestRun{}); err != nil {
		return err
	}
	run := IngestRun{
		ID:          uuid.NewString(),
		SourcePath:  cfg.CSVPath,
		RawRows:     int64(len(rows)),
		CuratedRows: curated,
		Warnings:    warnings,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
	if err := db.Create(&run).Error; err != nil {
		return fmt.Errorf("record ingest run: %w", err)
	}

	log.Printf("[kits-import] run %s: %d raw -> %d curated rows in %s",
		run.ID, run.RawRows, run.CuratedRows, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return nil
}

func loadRaw(ctx context.Context, conn *pgx.Conn, rows []Row) error {
	if _, err := conn.Exec(ctx, `DROP TABLE IF EXISTS kits_raw CASCADE`); err != nil {
		return fmt.Errorf("drop kits_raw: %w", err)
	}

	create := "CREATE TABLE kits_raw ("
	for i, c := range rawColumns {
		if i > 0 {
			create += ", "
		}
		create += c + " text"
	}
	create += ")"
	if _, err := conn.Exec(ctx, create); err != nil {
		return fmt.Errorf("create kits_raw: %w", err)
	}

	src := make([][]any, len(rows))
	for i, r := range rows {
		src[i] = []any{
			r.NNumber, nullable(r.SerialNumber), nullable(r.MfrMdlCode),
			nullable(r.Mfr), nullable(r.Model), nullable(r.AcftCat),
			nullable(r.NoSeats), nullable(r.AcWeight), nullable(r.EngCat),
			nullable(r.SurfCat), nullable(r.NoEng), nullable(r.City),
			nullable(r.State), nullable(r.ZipMin), nullable(r.KitMfg),
			nullable(r.KitMdl), nullable(r.ModeSCode), nullable(r.YearMfr),
			nullable(r.LastActionDate), nullable(r.CertIssueDate), nullable(r.AirWorthDate),
		}
	}

	n, err := conn.CopyFrom(ctx, pgx.Identifier{"kits_raw"}, rawColumns, pgx.CopyFromRows(src))
	if err != nil {
		return fmt.Errorf("copy into kits_raw: %w", err)
	}
	log.Printf("[kits-import] wrote %d rows to kits_raw", n)
	return nil
}

// Empty cells become SQL NULL so the curated casts see absence, not "".
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
