// Writer implementation printing telemetry to STDOUT
package session

import (
	"encoding/json"
	"fmt"

	"adasops/internal/telemetry"
)

// StdoutWriter prints kinematics rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single row.
func (w *StdoutWriter) Write(row telemetry.KinematicsRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple rows.
func (w *StdoutWriter) WriteBatch(rows []telemetry.KinematicsRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}
