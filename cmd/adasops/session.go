package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"adasops/internal/admin"
	"adasops/internal/session"
	"adasops/internal/simulator"
)

var (
	sessionConfigPath string
	sessionSchemaPath string
	sessionHost       string
	sessionPort       int
	sessionMap        string
	sessionWeather    string
	sessionVehicle    string
	sessionInterval   int
	sessionLogFile    string
	sessionPrintOnly  bool
	sessionAdminAddr  string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run a simulator session: spawn the ego vehicle and poll kinematics",
	RunE:  runSession,
}

func init() {
	sessionCmd.Flags().StringVar(&sessionConfigPath, "config", "", "Path to session config YAML (defaults apply when omitted)")
	sessionCmd.Flags().StringVar(&sessionSchemaPath, "schema", "", "Path to CUE schema for config validation")
	sessionCmd.Flags().StringVar(&sessionHost, "host", "", "Simulator host (overrides config)")
	sessionCmd.Flags().IntVar(&sessionPort, "port", 0, "Simulator port (overrides config)")
	sessionCmd.Flags().StringVar(&sessionMap, "map", "", "Map to load (overrides config)")
	sessionCmd.Flags().StringVar(&sessionWeather, "weather", "", "Weather preset (overrides config)")
	sessionCmd.Flags().StringVar(&sessionVehicle, "vehicle", "", "Vehicle blueprint (overrides config)")
	sessionCmd.Flags().IntVar(&sessionInterval, "interval", 0, "Kinematics polling interval in seconds (overrides config)")
	sessionCmd.Flags().StringVar(&sessionLogFile, "log-file", "", "Also append kinematics rows to this JSONL file")
	sessionCmd.Flags().BoolVar(&sessionPrintOnly, "print-only", false, "Print kinematics to stdout instead of the telemetry backend")
	sessionCmd.Flags().StringVar(&sessionAdminAddr, "admin-addr", "", "Serve the status page on this address (e.g. :8080)")
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(sessionConfigPath, sessionSchemaPath)
	if err != nil {
		return err
	}
	if sessionHost != "" {
		cfg.Server.Host = sessionHost
	}
	if sessionPort != 0 {
		cfg.Server.Port = sessionPort
	}
	if sessionMap != "" {
		cfg.World.Map = sessionMap
	}
	if sessionWeather != "" {
		cfg.World.Weather = sessionWeather
	}
	if sessionVehicle != "" {
		cfg.Vehicle.Blueprint = sessionVehicle
	}
	if sessionInterval > 0 {
		cfg.Telemetry.IntervalSeconds = sessionInterval
	}

	writer, cleanup, err := newTelemetryWriter(sessionPrintOnly, sessionLogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := simulator.Connect(cfg.Server.Host, cfg.Server.Port, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	if err != nil {
		return err
	}
	defer client.Close()

	version, err := client.ServerVersion()
	if err != nil {
		return err
	}
	log.Printf("[Session] connected to simulator %s at %s:%d", version, cfg.Server.Host, cfg.Server.Port)

	world, err := client.LoadWorld(cfg.World.Map)
	if err != nil {
		return err
	}

	interval := time.Duration(cfg.Telemetry.IntervalSeconds) * time.Second
	sess := session.New(session.WrapWorld(world), cfg, writer, interval)
	if err := sess.Setup(); err != nil {
		return err
	}
	defer sess.Teardown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sessionAdminAddr != "" {
		srv := admin.NewServer(sess)
		go func() {
			if err := srv.Start(ctx, sessionAdminAddr); err != nil && err != http.ErrServerClosed {
				log.Printf("[Admin] server stopped: %v", err)
			}
		}()
		log.Printf("[Admin] status page on %s", sessionAdminAddr)
	}

	return sess.Run(ctx)
}
