package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/L1nMay/vulnassess/internal/model"
)

const (
	bucketAssessments = "assessments"
)

// HistoryStore keeps a trace of served assessments.
type HistoryStore interface {
	SaveAssessment(rec *model.AssessmentRecord) error
	ListAssessments(limit int) ([]model.AssessmentRecord, error)
	GetStats() (Stats, error)
	Close() error
}

type Stats struct {
	TotalAssessments int            `json:"total_assessments"`
	TotalTargets     int64          `json:"total_targets"`
	ByMode           map[string]int `json:"by_mode"`
}

// prepare fills ID and CreatedAt when the caller left them empty.
func prepare(rec *model.AssessmentRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func statsOf(records []model.AssessmentRecord) Stats {
	st := Stats{ByMode: map[string]int{}}
	for _, r := range records {
		st.TotalAssessments++
		st.TotalTargets += r.TotalTargets
		st.ByMode[r.Mode]++
	}
	return st
}

type Storage struct {
	db *bbolt.DB
}

var _ HistoryStore = (*Storage)(nil)

func NewStorage(dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists([]byte(bucketAssessments))
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) SaveAssessment(rec *model.AssessmentRecord) error {
	prepare(rec)
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketAssessments))
		if b == nil {
			return errors.New("bucket not found")
		}
		return b.Put([]byte(rec.ID), data)
	})
}

func (s *Storage) all() ([]model.AssessmentRecord, error) {
	out := []model.AssessmentRecord{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketAssessments))
		if b == nil {
			return errors.New("bucket not found")
		}
		return b.ForEach(func(k, v []byte) error {
			var r model.AssessmentRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	})
	return out, err
}

// ListAssessments returns the newest records first; limit <= 0 means all.
func (s *Storage) ListAssessments(limit int) ([]model.AssessmentRecord, error) {
	out, err := s.all()
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Storage) GetStats() (Stats, error) {
	records, err := s.all()
	if err != nil {
		return Stats{}, err
	}
	return statsOf(records), nil
}
