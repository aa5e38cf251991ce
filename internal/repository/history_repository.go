package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"simulado/api/internal/models"
)

// HistoryRepository owns the append-only generation ledger. Records are
// never updated or deleted.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Create(ctx context.Context, record models.GenerationRecord) error {
	const query = `
		INSERT INTO generation_history (id, exam, subject, difficulty, question_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Exam,
		record.Subject,
		record.Difficulty,
		record.QuestionCount,
		record.CreatedAt,
	)
	return err
}

// List returns every record, newest first.
func (r *HistoryRepository) List(ctx context.Context) ([]models.GenerationRecord, error) {
	const query = `
		SELECT id, exam, subject, difficulty, question_count, created_at
		FROM generation_history
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.GenerationRecord
	for rows.Next() {
		var record models.GenerationRecord
		if err := rows.Scan(
			&record.ID,
			&record.Exam,
			&record.Subject,
			&record.Difficulty,
			&record.QuestionCount,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountCreatedBetween reports how many records were created in [from, to).
func (r *HistoryRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM generation_history
		WHERE created_at >= $1 AND created_at < $2
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
