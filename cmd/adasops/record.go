package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"adasops/internal/bag"
	"adasops/internal/bus"
	"adasops/internal/logging"
)

var (
	recordConfigPath string
	recordSchemaPath string
	recordBroker     string
	recordClientID   string
	recordTopic      string
	recordType       string
	recordQoS        int
	recordDepth      int
	recordBagDir     string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Bridge one bus topic into a bag recording",
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordConfigPath, "config", "", "Path to session config YAML (defaults apply when omitted)")
	recordCmd.Flags().StringVar(&recordSchemaPath, "schema", "", "Path to CUE schema for config validation")
	recordCmd.Flags().StringVar(&recordBroker, "broker", "", "Broker URL (overrides config)")
	recordCmd.Flags().StringVar(&recordClientID, "client-id", "", "Bus client id (overrides config)")
	recordCmd.Flags().StringVar(&recordTopic, "topic", "", "Topic to record (overrides config)")
	recordCmd.Flags().StringVar(&recordType, "type", "", "Message type name stored in the bag (overrides config)")
	recordCmd.Flags().IntVar(&recordQoS, "qos", -1, "Subscription QoS (overrides config)")
	recordCmd.Flags().IntVar(&recordDepth, "queue-depth", 0, "Receive queue depth (overrides config)")
	recordCmd.Flags().StringVar(&recordBagDir, "bag", "", "Bag output directory (overrides config)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(recordConfigPath, recordSchemaPath)
	if err != nil {
		return err
	}
	if recordBroker != "" {
		cfg.Bus.Broker = recordBroker
	}
	if recordClientID != "" {
		cfg.Bus.ClientID = recordClientID
	}
	if recordTopic != "" {
		cfg.Bus.Topic = recordTopic
	}
	if recordType != "" {
		cfg.Bus.Type = recordType
	}
	if recordQoS >= 0 {
		if recordQoS > 2 {
			return fmt.Errorf("qos %d out of range [0,2]", recordQoS)
		}
		cfg.Bus.QoS = recordQoS
	}
	if recordDepth > 0 {
		cfg.Bus.QueueDepth = recordDepth
	}
	if recordBagDir != "" {
		cfg.Bag.Dir = recordBagDir
	}

	logger := logging.New("bridge")

	writer, err := bag.Create(cfg.Bag.Dir)
	if err != nil {
		return err
	}
	if err := writer.CreateTopic(bag.TopicMetadata{
		Name:                cfg.Bus.Topic,
		Type:                cfg.Bus.Type,
		SerializationFormat: cfg.Bag.SerializationFormat,
	}); err != nil {
		writer.Close()
		return err
	}

	client, err := bus.Connect(cfg.Bus.Broker, cfg.Bus.ClientID, 10*time.Second)
	if err != nil {
		writer.Close()
		return err
	}
	defer client.Disconnect(250)

	sub := bus.NewSubscriber(client, cfg.Bus.Topic, byte(cfg.Bus.QoS), cfg.Bus.QueueDepth)
	if err := sub.Start(); err != nil {
		writer.Close()
		return err
	}
	logger.Info("recording", "broker", cfg.Bus.Broker, "topic", cfg.Bus.Topic, "bag", cfg.Bag.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case msg := <-sub.Messages():
			if err := writer.Write(msg.Topic, msg.Payload, msg.Received.UnixNano()); err != nil {
				logger.Error("write message", "error", err)
				sub.Stop()
				writer.Close()
				return err
			}
		}
	}

	sub.Stop()
	// The channel is closed now; persist anything still queued.
	for msg := range sub.Messages() {
		if err := writer.Write(msg.Topic, msg.Payload, msg.Received.UnixNano()); err != nil {
			logger.Error("write message", "error", err)
			break
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}
	logger.Info("recording stopped", "messages", writer.MessageCount(), "dropped", sub.Dropped())
	return nil
}
