// Package store persists RunReports, InscriptionBatch summaries, and
// PricePoints. The core itself never requires a database; the engine
// command wires this in only when a connection string is configured
// (spec.md's core/surface boundary in §6).
package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enochian/lighthouse/pkg/models"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx.
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}

	log.Println("connected to PostgreSQL for the lighthouse engine")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes the schema.sql file.
func (s *PostgresStore) InitSchema() error {
	schemaBytes, err := os.ReadFile("internal/store/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}

	_, err = s.pool.Exec(context.Background(), string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}

	log.Println("lighthouse schema initialized")
	return nil
}

// SaveRunReport persists a run's diagnostic report and its per-governor
// skip/abort/oversize detail rows inside one transaction.
func (s *PostgresStore) SaveRunReport(ctx context.Context, report models.RunReport) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertReportSQL := `
		INSERT INTO run_reports (run_id, block_height, questlines_produced, low_authenticity_count,
			oracle_permanent_count, inscription_batch_count, created_at_counter)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO UPDATE
		SET questlines_produced = EXCLUDED.questlines_produced,
			low_authenticity_count = EXCLUDED.low_authenticity_count,
			oracle_permanent_count = EXCLUDED.oracle_permanent_count,
			inscription_batch_count = EXCLUDED.inscription_batch_count,
			created_at_counter = EXCLUDED.created_at_counter;
	`
	_, err = tx.Exec(ctx, insertReportSQL,
		report.RunID, report.BlockHeight, report.QuestlinesProduced, report.LowAuthenticityCount,
		report.OraclePermanentCount, report.InscriptionBatchCount, report.CreatedAtCounter)
	if err != nil {
		return fmt.Errorf("failed to insert run_reports: %v", err)
	}

	for _, skip := range report.QuestlinesSkipped {
		_, err = tx.Exec(ctx,
			`INSERT INTO run_report_skips (run_id, governor_id, reason) VALUES ($1, $2, $3)`,
			report.RunID, skip.GovernorID, skip.Reason)
		if err != nil {
			return fmt.Errorf("failed to insert run_report_skips: %v", err)
		}
	}

	for _, governorID := range report.AbortedQuestlines {
		_, err = tx.Exec(ctx,
			`INSERT INTO run_report_aborted (run_id, governor_id) VALUES ($1, $2)`,
			report.RunID, governorID)
		if err != nil {
			return fmt.Errorf("failed to insert run_report_aborted: %v", err)
		}
	}

	for _, traditionID := range report.OversizeTraditions {
		_, err = tx.Exec(ctx,
			`INSERT INTO run_report_oversize_traditions (run_id, tradition_id) VALUES ($1, $2)`,
			report.RunID, traditionID)
		if err != nil {
			return fmt.Errorf("failed to insert run_report_oversize_traditions: %v", err)
		}
	}

	return tx.Commit(ctx)
}

// SaveInscriptionBatches persists the sealed batch summaries for a run
// (the compressed payload itself is not stored).
func (s *PostgresStore) SaveInscriptionBatches(ctx context.Context, runID string, batches []models.InscriptionBatch) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertSQL := `
		INSERT INTO inscription_batches (inscription_id, run_id, sequence_no, entry_count,
			uncompressed_size, compressed_size, payload_digest, state, cross_batch_refs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (inscription_id) DO UPDATE
		SET state = EXCLUDED.state, compressed_size = EXCLUDED.compressed_size;
	`
	for _, b := range batches {
		_, err = tx.Exec(ctx, insertSQL,
			b.InscriptionID, runID, b.SequenceNo, b.EntryCount,
			b.UncompressedSize, b.CompressedSize, b.PayloadDigest, string(b.State), b.CrossBatchRefs)
		if err != nil {
			return fmt.Errorf("failed to insert inscription_batches: %v", err)
		}
	}
	return tx.Commit(ctx)
}

// SavePricePoint upserts one quest's current pricing snapshot.
func (s *PostgresStore) SavePricePoint(ctx context.Context, pp models.PricePoint, recordedAtCounter int64) error {
	sql := `
		INSERT INTO price_points (quest_id, base_price, authenticity_multiplier, enochian_bonus,
			rarity_multiplier, demand_multiplier, liquidity_adjustment, final_price, recorded_at_counter, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (quest_id) DO UPDATE
		SET base_price = EXCLUDED.base_price,
			authenticity_multiplier = EXCLUDED.authenticity_multiplier,
			enochian_bonus = EXCLUDED.enochian_bonus,
			rarity_multiplier = EXCLUDED.rarity_multiplier,
			demand_multiplier = EXCLUDED.demand_multiplier,
			liquidity_adjustment = EXCLUDED.liquidity_adjustment,
			final_price = EXCLUDED.final_price,
			recorded_at_counter = EXCLUDED.recorded_at_counter,
			last_updated = NOW();
	`
	_, err := s.pool.Exec(ctx, sql,
		pp.QuestID, pp.BasePrice, pp.AuthenticityMultiplier, pp.EnochianBonus,
		pp.RarityMultiplier, pp.DemandMultiplier, pp.LiquidityAdjustment, pp.FinalPrice, recordedAtCounter)
	return err
}

// RunSummary is a lightweight projection for list endpoints.
type RunSummary struct {
	RunID                 string `json:"runId"`
	BlockHeight           int64  `json:"blockHeight"`
	QuestlinesProduced    int    `json:"questlinesProduced"`
	InscriptionBatchCount int    `json:"inscriptionBatchCount"`
}

// ListRuns returns the most recent runs, newest first by created_at_counter.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT run_id, block_height, questlines_produced, inscription_batch_count
		FROM run_reports
		ORDER BY created_at_counter DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.BlockHeight, &r.QuestlinesProduced, &r.InscriptionBatchCount); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if runs == nil {
		runs = []RunSummary{}
	}
	return runs, nil
}

// GetPool exposes the connection pool for callers that need direct access
// (shadow evaluator parameter sweeps, ad hoc reporting queries).
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
