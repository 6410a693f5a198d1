package main

import (
	"os"

	"adasops/internal/session"
)

// newTelemetryWriter sets up the kinematics writer based on flags and env
// vars. It returns the writer and a cleanup function to close resources.
func newTelemetryWriter(printOnly bool, logFile string) (session.TelemetryWriter, func(), error) {
	cleanup := func() {}

	var writer session.TelemetryWriter
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		writer = &session.StdoutWriter{}
	} else {
		w, err := session.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), "public", os.Getenv("KINEMATICS_TABLE"))
		if err != nil {
			return nil, nil, err
		}
		writer = w
	}

	if logFile != "" {
		fw, err := session.NewFileWriter(logFile)
		if err != nil {
			return nil, nil, err
		}
		writer = session.NewMultiWriter(writer, fw)
		cleanup = func() { fw.Close() }
	}
	return writer, cleanup, nil
}
