package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"adasops/internal/bag"
	"adasops/internal/bus"
	"adasops/internal/logging"
)

var (
	playBagDir   string
	playBroker   string
	playClientID string
	playQoS      int
	playSpeed    float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay a bag recording, preserving inter-message timing",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playBagDir, "bag", "my_bag", "Bag directory to replay")
	playCmd.Flags().StringVar(&playBroker, "broker", "", "Republish to this broker instead of printing")
	playCmd.Flags().StringVar(&playClientID, "client-id", "adasops-play", "Bus client id for republishing")
	playCmd.Flags().IntVar(&playQoS, "qos", 1, "Publish QoS for republishing")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 1.0, "Playback speed multiplier")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playSpeed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", playSpeed)
	}
	if playQoS < 0 || playQoS > 2 {
		return fmt.Errorf("qos %d out of range [0,2]", playQoS)
	}

	logger := logging.New("play")

	reader, err := bag.Open(playBagDir)
	if err != nil {
		return err
	}
	defer reader.Close()

	pubs := map[string]*bus.Publisher{}
	if playBroker != "" {
		client, err := bus.Connect(playBroker, playClientID, 10*time.Second)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)

		topics, err := reader.Topics()
		if err != nil {
			return err
		}
		for _, t := range topics {
			pubs[t.Name] = bus.NewPublisher(client, t.Name, byte(playQoS))
		}
	}

	var count int64
	var prevNS int64 = -1
	err = reader.Each(func(rec bag.Record) error {
		if prevNS >= 0 && rec.TimestampNS > prevNS {
			gap := time.Duration(float64(rec.TimestampNS-prevNS) / playSpeed)
			time.Sleep(gap)
		}
		prevNS = rec.TimestampNS

		count++
		if pub, ok := pubs[rec.Topic]; ok {
			return pub.Publish(rec.Data)
		}
		fmt.Printf("[%d] %s (%s): %s\n", rec.TimestampNS, rec.Topic, rec.Type, rec.Data)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("playback finished", "bag", playBagDir, "messages", count)
	return nil
}
