// Package store provides the SQLite-backed transaction ledger.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendy-ai/spendy/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Store owns the ledger database: transactions and category limits.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the ledger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddTransaction inserts one transaction.
func (s *Store) AddTransaction(t model.Transaction) error {
	return s.InsertTransactions([]model.Transaction{t})
}

// InsertTransactions inserts a batch of transactions in one database
// transaction.
func (s *Store) InsertTransactions(batch []model.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, t := range batch {
		var tod sql.NullString
		if t.TimeOfDay != nil {
			tod = sql.NullString{String: t.TimeOfDay.Format(timeLayout), Valid: true}
		}
		var lat, lon sql.NullFloat64
		if t.Latitude != nil {
			lat = sql.NullFloat64{Float64: *t.Latitude, Valid: true}
		}
		if t.Longitude != nil {
			lon = sql.NullFloat64{Float64: *t.Longitude, Valid: true}
		}

		_, err = tx.Exec(`INSERT INTO transactions
			(id, user_id, item, category, kind, amount, date, time_of_day, location, latitude, longitude, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.UserID, t.Item, t.Category, string(t.Kind), t.Amount,
			t.Date.Format(dateLayout), tod, t.Location, lat, lon, now,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns a user's transactions ordered by date ascending.
// Zero since/until bounds are open.
func (s *Store) ListTransactions(userID string, since, until time.Time) ([]model.Transaction, error) {
	q := `SELECT id, user_id, item, category, kind, amount, date, time_of_day, location, latitude, longitude
		FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if !since.IsZero() {
		q += " AND date >= ?"
		args = append(args, since.Format(dateLayout))
	}
	if !until.IsZero() {
		q += " AND date <= ?"
		args = append(args, until.Format(dateLayout))
	}
	q += " ORDER BY date ASC, created_at ASC"

	return s.queryTransactions(q, args...)
}

// RecentTransactions returns up to k of the user's most recent transactions,
// newest first.
func (s *Store) RecentTransactions(userID string, k int) ([]model.Transaction, error) {
	q := `SELECT id, user_id, item, category, kind, amount, date, time_of_day, location, latitude, longitude
		FROM transactions WHERE user_id = ?
		ORDER BY date DESC, created_at DESC LIMIT ?`
	return s.queryTransactions(q, userID, k)
}

func (s *Store) queryTransactions(q string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var kind, dateStr string
		var item, tod, location sql.NullString
		var lat, lon sql.NullFloat64

		err := rows.Scan(&t.ID, &t.UserID, &item, &t.Category, &kind, &t.Amount,
			&dateStr, &tod, &location, &lat, &lon)
		if err != nil {
			return nil, err
		}

		t.Kind = model.Kind(kind)
		t.Item = item.String
		t.Location = location.String
		t.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("bad date %q for transaction %s: %w", dateStr, t.ID, err)
		}
		if tod.Valid && tod.String != "" {
			if parsed, perr := time.Parse(timeLayout, tod.String); perr == nil {
				t.TimeOfDay = &parsed
			}
		}
		if lat.Valid {
			v := lat.Float64
			t.Latitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			t.Longitude = &v
		}

		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SetCategoryLimit upserts a monthly limit for (user, category).
func (s *Store) SetCategoryLimit(l model.CategoryLimit) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO category_limits (user_id, category, monthly_limit)
		VALUES (?, ?, ?)`, l.UserID, l.Category, l.MonthlyLimit.String())
	return err
}

// GetCategoryLimit returns the configured limit for (user, category). The
// second return is false when no limit is configured.
func (s *Store) GetCategoryLimit(userID, category string) (model.CategoryLimit, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT monthly_limit FROM category_limits WHERE user_id = ? AND category = ?`,
		userID, category).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.CategoryLimit{}, false, nil
	}
	if err != nil {
		return model.CategoryLimit{}, false, err
	}

	limit, err := decimal.NewFromString(raw)
	if err != nil {
		return model.CategoryLimit{}, false, fmt.Errorf("bad limit %q for %s/%s: %w", raw, userID, category, err)
	}
	return model.CategoryLimit{UserID: userID, Category: category, MonthlyLimit: limit}, true, nil
}

// ListCategoryLimits returns all limits configured for a user.
func (s *Store) ListCategoryLimits(userID string) ([]model.CategoryLimit, error) {
	rows, err := s.db.Query(`SELECT category, monthly_limit FROM category_limits
		WHERE user_id = ? ORDER BY category`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var limits []model.CategoryLimit
	for rows.Next() {
		var category, raw string
		if err := rows.Scan(&category, &raw); err != nil {
			return nil, err
		}
		limit, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("bad limit %q for %s/%s: %w", raw, userID, category, err)
		}
		limits = append(limits, model.CategoryLimit{UserID: userID, Category: category, MonthlyLimit: limit})
	}
	return limits, rows.Err()
}

// DeleteCategoryLimit removes the limit for (user, category).
func (s *Store) DeleteCategoryLimit(userID, category string) error {
	_, err := s.db.Exec(`DELETE FROM category_limits WHERE user_id = ? AND category = ?`, userID, category)
	return err
}

// TransactionCount returns the number of transactions stored for a user.
func (s *Store) TransactionCount(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
