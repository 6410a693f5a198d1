package bag

import (
	"path/filepath"
	"testing"
)

func chatterTopic() TopicMetadata {
	return TopicMetadata{
		Name:                "chatter",
		Type:                "std_msgs/msg/String",
		SerializationFormat: "cdr",
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my_bag")
	w, err := Create(dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.CreateTopic(chatterTopic()); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	// Written out of timestamp order on purpose; reads come back sorted.
	writes := []struct {
		data string
		ts   int64
	}{
		{"second", 2_000_000_000},
		{"first", 1_000_000_000},
		{"third", 3_000_000_000},
	}
	for _, m := range writes {
		if err := w.Write("chatter", []byte(m.data), m.ts); err != nil {
			t.Fatalf("Write %q: %v", m.data, err)
		}
	}
	if got := w.MessageCount(); got != 3 {
		t.Errorf("MessageCount = %d, want 3", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	topics, err := r.Topics()
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if len(topics) != 1 || topics[0] != chatterTopic() {
		t.Errorf("Topics = %+v", topics)
	}

	var order []string
	var stamps []int64
	err = r.Each(func(rec Record) error {
		order = append(order, string(rec.Data))
		stamps = append(stamps, rec.TimestampNS)
		if rec.Topic != "chatter" || rec.Type != "std_msgs/msg/String" {
			t.Errorf("record metadata = %s/%s", rec.Topic, rec.Type)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Errorf("messages out of timestamp order: %v", order)
	}
	if stamps[0] != 1_000_000_000 {
		t.Errorf("first timestamp = %d, want 1000000000", stamps[0])
	}
}

func TestWriter_MetadataSidecar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my_bag")
	w, err := Create(dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.CreateTopic(chatterTopic()); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	if err := w.Write("chatter", []byte("hello"), 5_000_000_000); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write("chatter", []byte("again"), 8_000_000_000); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	meta, err := LoadMetadata(dir)
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	info := meta.Info
	if info.StorageIdentifier != "sqlite3" {
		t.Errorf("storage identifier = %q", info.StorageIdentifier)
	}
	if info.MessageCount != 2 {
		t.Errorf("message count = %d, want 2", info.MessageCount)
	}
	if info.StartingTime.NanosecondsSinceEpoch != 5_000_000_000 {
		t.Errorf("starting time = %d", info.StartingTime.NanosecondsSinceEpoch)
	}
	if info.Duration.Nanoseconds != 3_000_000_000 {
		t.Errorf("duration = %d", info.Duration.Nanoseconds)
	}
	if len(info.Topics) != 1 || info.Topics[0].MessageCount != 2 {
		t.Errorf("topics = %+v", info.Topics)
	}
}

func TestWriter_Guards(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my_bag")
	w, err := Create(dir)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	if err := w.Write("chatter", []byte("x"), 1); err == nil {
		t.Error("Write to unregistered topic succeeded")
	}
	if err := w.CreateTopic(chatterTopic()); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	if err := w.CreateTopic(chatterTopic()); err == nil {
		t.Error("duplicate CreateTopic succeeded")
	}

	if _, err := Create(dir); err == nil {
		t.Error("Create over an existing bag succeeded")
	}
}

func TestOpen_MissingBag(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("Open on a missing bag succeeded")
	}
}
