package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/L1nMay/vulnassess/internal/model"
)

type Postgres struct {
	db *sql.DB
}

var _ HistoryStore = (*Postgres)(nil)

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

func (p *Postgres) Migrate(dir string) error {
	return RunMigrations(p.db, dir)
}

func (p *Postgres) SaveAssessment(rec *model.AssessmentRecord) error {
	prepare(rec)
	preview, err := json.Marshal(rec.Preview)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
		INSERT INTO assessments (
			id,
			mode,
			label,
			total_targets,
			preview,
			remote_addr,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rec.ID,
		rec.Mode,
		rec.Label,
		rec.TotalTargets,
		preview,
		rec.RemoteAddr,
		rec.CreatedAt,
	)
	if IsUniqueViolation(err) {
		return fmt.Errorf("assessment %s already recorded: %w", rec.ID, err)
	}
	return err
}

func (p *Postgres) ListAssessments(limit int) ([]model.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := p.db.Query(`
		SELECT
			id,
			mode,
			label,
			total_targets,
			preview,
			remote_addr,
			created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AssessmentRecord, 0)
	for rows.Next() {
		var (
			r       model.AssessmentRecord
			preview []byte
		)
		if err := rows.Scan(
			&r.ID,
			&r.Mode,
			&r.Label,
			&r.TotalTargets,
			&preview,
			&r.RemoteAddr,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(preview) > 0 {
			if err := json.Unmarshal(preview, &r.Preview); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) GetStats() (Stats, error) {
	st := Stats{ByMode: map[string]int{}}

	rows, err := p.db.Query(`
		SELECT mode, COUNT(*), COALESCE(SUM(total_targets), 0)
		FROM assessments
		GROUP BY mode
	`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mode    string
			count   int
			targets int64
		)
		if err := rows.Scan(&mode, &count, &targets); err != nil {
			return Stats{}, err
		}
		st.ByMode[mode] = count
		st.TotalAssessments += count
		st.TotalTargets += targets
	}
	return st, rows.Err()
}

// IsUniqueViolation reports a duplicate record id.
func IsUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
