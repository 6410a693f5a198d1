package main

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"adasops/internal/mapviz"
	"adasops/internal/simulator"
)

var (
	plotConfigPath string
	plotSchemaPath string
	plotHost       string
	plotPort       int
	plotMap        string
	plotOut        string
)

var plotMapCmd = &cobra.Command{
	Use:   "plot-map",
	Short: "Render the current map's road network and spawn points to a PNG",
	RunE:  runPlotMap,
}

func init() {
	plotMapCmd.Flags().StringVar(&plotConfigPath, "config", "", "Path to session config YAML (defaults apply when omitted)")
	plotMapCmd.Flags().StringVar(&plotSchemaPath, "schema", "", "Path to CUE schema for config validation")
	plotMapCmd.Flags().StringVar(&plotHost, "host", "", "Simulator host (overrides config)")
	plotMapCmd.Flags().IntVar(&plotPort, "port", 0, "Simulator port (overrides config)")
	plotMapCmd.Flags().StringVar(&plotMap, "map", "", "Expected map name (warns on mismatch)")
	plotMapCmd.Flags().StringVar(&plotOut, "out", "map.png", "Output PNG path")
}

func runPlotMap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(plotConfigPath, plotSchemaPath)
	if err != nil {
		return err
	}
	if plotHost != "" {
		cfg.Server.Host = plotHost
	}
	if plotPort != 0 {
		cfg.Server.Port = plotPort
	}
	if plotMap != "" {
		cfg.World.Map = plotMap
	}

	client, err := simulator.Connect(cfg.Server.Host, cfg.Server.Port, time.Duration(cfg.Server.TimeoutSeconds)*time.Second)
	if err != nil {
		return err
	}
	defer client.Close()

	// Inspect whatever map the server currently has loaded; plotting must
	// not disturb a running session by switching worlds.
	world, err := client.World()
	if err != nil {
		return err
	}
	if !strings.Contains(world.Name(), cfg.World.Map) {
		log.Printf("[MapViz] server has %s loaded, expected %s", world.Name(), cfg.World.Map)
	}

	network, err := mapviz.Fetch(world)
	if err != nil {
		return err
	}
	if err := network.Render(plotOut); err != nil {
		return err
	}
	log.Printf("[MapViz] %s: %d road segments, %d spawn points -> %s",
		network.MapName, len(network.Segments), len(network.SpawnPoints), plotOut)
	return nil
}
