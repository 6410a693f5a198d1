// Sequential on-disk log of bus messages ("bag"), stored as a SQLite
// database plus a metadata.yaml sidecar, following the rosbag2 sqlite3
// layout so standard tooling can inspect recordings.
package bag

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// TopicMetadata describes one recorded topic.
type TopicMetadata struct {
	Name                string `yaml:"name"`
	Type                string `yaml:"type"`
	SerializationFormat string `yaml:"serialization_format"`
}

const schema = `
CREATE TABLE topics (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  serialization_format TEXT NOT NULL
);
CREATE TABLE messages (
  id INTEGER PRIMARY KEY,
  topic_id INTEGER NOT NULL,
  timestamp INTEGER NOT NULL,
  data BLOB NOT NULL
);
CREATE INDEX timestamp_idx ON messages (timestamp ASC);
`

// Writer appends messages for registered topics. It is not safe for
// concurrent use; the bridge feeds it from a single receive loop.
type Writer struct {
	db  *sql.DB
	dir string

	topicIDs map[string]int64
	topics   []TopicMetadata
	counts   map[string]int64
	firstNS  int64
	lastNS   int64
}

// Create initializes a new bag directory. It refuses to overwrite an
// existing recording.
func Create(dir string) (*Writer, error) {
	dbPath := storagePath(dir)
	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("bag %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bag dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open bag storage: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bag schema: %w", err)
	}
	return &Writer{
		db:       db,
		dir:      dir,
		topicIDs: make(map[string]int64),
		counts:   make(map[string]int64),
		firstNS:  -1,
	}, nil
}

// storagePath returns the db3 file path inside the bag directory, named
// after the directory the way rosbag2 names its first storage file.
func storagePath(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+"_0.db3")
}

// CreateTopic registers a topic before any message for it is written.
func (w *Writer) CreateTopic(meta TopicMetadata) error {
	if _, ok := w.topicIDs[meta.Name]; ok {
		return fmt.Errorf("topic %s already registered", meta.Name)
	}
	res, err := w.db.Exec(
		"INSERT INTO topics (name, type, serialization_format) VALUES (?, ?, ?)",
		meta.Name, meta.Type, meta.SerializationFormat,
	)
	if err != nil {
		return fmt.Errorf("register topic %s: %w", meta.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.topicIDs[meta.Name] = id
	w.topics = append(w.topics, meta)
	return nil
}

// Write appends one serialized message under the given topic, indexed by
// its timestamp in nanoseconds since epoch.
func (w *Writer) Write(topic string, data []byte, timestampNS int64) error {
	id, ok := w.topicIDs[topic]
	if !ok {
		return fmt.Errorf("write to unregistered topic %s", topic)
	}
	if _, err := w.db.Exec(
		"INSERT INTO messages (topic_id, timestamp, data) VALUES (?, ?, ?)",
		id, timestampNS, data,
	); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	w.counts[topic]++
	if w.firstNS < 0 || timestampNS < w.firstNS {
		w.firstNS = timestampNS
	}
	if timestampNS > w.lastNS {
		w.lastNS = timestampNS
	}
	return nil
}

// MessageCount reports how many messages have been written so far.
func (w *Writer) MessageCount() int64 {
	var total int64
	for _, n := range w.counts {
		total += n
	}
	return total
}

// Close flushes the metadata sidecar and closes the storage file.
func (w *Writer) Close() error {
	meta := w.buildMetadata()
	if err := saveMetadata(w.dir, meta); err != nil {
		w.db.Close()
		return err
	}
	return w.db.Close()
}
