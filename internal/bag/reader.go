package bag

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Record is one stored message joined with its topic metadata.
type Record struct {
	Topic       string
	Type        string
	Data        []byte
	TimestampNS int64
}

// Reader iterates over a recorded bag.
type Reader struct {
	db *sql.DB
}

// Open opens an existing bag directory for reading.
func Open(dir string) (*Reader, error) {
	dbPath := storagePath(dir)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open bag %s: %w", dir, err)
	}
	// sql.Open is lazy; verify the storage file is a usable bag.
	if _, err := db.Exec("SELECT count(*) FROM topics"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open bag %s: %w", dir, err)
	}
	return &Reader{db: db}, nil
}

// Topics lists the topics recorded in the bag.
func (r *Reader) Topics() ([]TopicMetadata, error) {
	rows, err := r.db.Query("SELECT name, type, serialization_format FROM topics ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []TopicMetadata
	for rows.Next() {
		var t TopicMetadata
		if err := rows.Scan(&t.Name, &t.Type, &t.SerializationFormat); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// Each calls fn for every message in timestamp order. Iteration stops at
// the first error fn returns.
func (r *Reader) Each(fn func(Record) error) error {
	rows, err := r.db.Query(`
SELECT t.name, t.type, m.data, m.timestamp
FROM messages m JOIN topics t ON t.id = m.topic_id
ORDER BY m.timestamp ASC, m.id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Topic, &rec.Type, &rec.Data, &rec.TimestampNS); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close releases the storage file.
func (r *Reader) Close() error {
	return r.db.Close()
}
