package bus

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends payloads to one topic. Used by bag playback to feed
// recorded messages back onto the bus.
type Publisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// NewPublisher prepares a publisher for the given topic.
func NewPublisher(client mqtt.Client, topic string, qos byte) *Publisher {
	return &Publisher{client: client, topic: topic, qos: qos}
}

// Publish sends one payload and waits for broker acknowledgement.
func (p *Publisher) Publish(payload []byte) error {
	token := p.client.Publish(p.topic, p.qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}
	return nil
}
