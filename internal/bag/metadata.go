package bag

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Metadata mirrors the rosbag2 metadata.yaml layout.
type Metadata struct {
	Info BagInfo `yaml:"rosbag2_bagfile_information"`
}

type BagInfo struct {
	Version           int          `yaml:"version"`
	StorageIdentifier string       `yaml:"storage_identifier"`
	RelativeFilePaths []string     `yaml:"relative_file_paths"`
	Duration          NanosValue   `yaml:"duration"`
	StartingTime      EpochValue   `yaml:"starting_time"`
	MessageCount      int64        `yaml:"message_count"`
	Topics            []TopicCount `yaml:"topics_with_message_count"`
}

type NanosValue struct {
	Nanoseconds int64 `yaml:"nanoseconds"`
}

type EpochValue struct {
	NanosecondsSinceEpoch int64 `yaml:"nanoseconds_since_epoch"`
}

type TopicCount struct {
	TopicMetadata TopicMetadata `yaml:"topic_metadata"`
	MessageCount  int64         `yaml:"message_count"`
}

const metadataFile = "metadata.yaml"

func (w *Writer) buildMetadata() Metadata {
	start := w.firstNS
	if start < 0 {
		start = 0
	}
	duration := int64(0)
	if w.lastNS > start {
		duration = w.lastNS - start
	}
	topics := make([]TopicCount, 0, len(w.topics))
	for _, t := range w.topics {
		topics = append(topics, TopicCount{TopicMetadata: t, MessageCount: w.counts[t.Name]})
	}
	return Metadata{Info: BagInfo{
		Version:           5,
		StorageIdentifier: "sqlite3",
		RelativeFilePaths: []string{filepath.Base(storagePath(w.dir))},
		Duration:          NanosValue{Nanoseconds: duration},
		StartingTime:      EpochValue{NanosecondsSinceEpoch: start},
		MessageCount:      w.MessageCount(),
		Topics:            topics,
	}}
}

func saveMetadata(dir string, meta Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal bag metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644)
}

// LoadMetadata reads the metadata sidecar of a recorded bag.
func LoadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse bag metadata: %w", err)
	}
	return &meta, nil
}
