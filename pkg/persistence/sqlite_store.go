package persistence

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/goodnight/goodnight/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id         TEXT PRIMARY KEY,
    position   INTEGER NOT NULL,
    title      TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    bill_id  TEXT NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    title    TEXT NOT NULL,
    price    REAL NOT NULL,
    person   TEXT NOT NULL,
    PRIMARY KEY (bill_id, position)
);

CREATE INDEX IF NOT EXISTS idx_bills_position ON bills(position);
`

// SQLiteStore implements Store using a SQLite database. Collection order
// is kept in the position columns.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadBills() ([]types.Bill, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return []types.Bill{}, fmt.Errorf("%w: failed to begin transaction: %w", ErrRead, err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT id, title, created_at FROM bills ORDER BY position")
	if err != nil {
		return []types.Bill{}, fmt.Errorf("%w: failed to query bills: %w", ErrRead, err)
	}
	defer rows.Close()

	bills := []types.Bill{}
	index := map[string]int{}
	for rows.Next() {
		bill := types.Bill{Items: []types.Item{}}
		if err := rows.Scan(&bill.ID, &bill.Title, &bill.CreatedAt); err != nil {
			return []types.Bill{}, fmt.Errorf("%w: failed to scan bill: %w", ErrRead, err)
		}
		index[bill.ID] = len(bills)
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return []types.Bill{}, fmt.Errorf("%w: bill rows error: %w", ErrRead, err)
	}

	itemRows, err := tx.Query("SELECT bill_id, title, price, person FROM items ORDER BY bill_id, position")
	if err != nil {
		return []types.Bill{}, fmt.Errorf("%w: failed to query items: %w", ErrRead, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var billID string
		var item types.Item
		if err := itemRows.Scan(&billID, &item.Title, &item.Price, &item.Person); err != nil {
			return []types.Bill{}, fmt.Errorf("%w: failed to scan item: %w", ErrRead, err)
		}
		i, ok := index[billID]
		if !ok {
			continue
		}
		bills[i].Items = append(bills[i].Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return []types.Bill{}, fmt.Errorf("%w: item rows error: %w", ErrRead, err)
	}

	return bills, nil
}

// DumpBills replaces every row in one transaction.
func (s *SQLiteStore) DumpBills(bills []types.Bill) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrWrite, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"items", "bills"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("%w: failed to clear table %s: %w", ErrWrite, table, err)
		}
	}

	for pos, bill := range bills {
		if _, err := tx.Exec(
			"INSERT INTO bills (id, position, title, created_at) VALUES (?, ?, ?, ?)",
			bill.ID, pos, bill.Title, bill.CreatedAt,
		); err != nil {
			return fmt.Errorf("%w: failed to insert bill %s: %w", ErrWrite, bill.ID, err)
		}

		for itemPos, item := range bill.Items {
			if _, err := tx.Exec(
				"INSERT INTO items (bill_id, position, title, price, person) VALUES (?, ?, ?, ?, ?)",
				bill.ID, itemPos, item.Title, item.Price, item.Person,
			); err != nil {
				return fmt.Errorf("%w: failed to insert item: %w", ErrWrite, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", ErrWrite, err)
	}

	return nil
}
