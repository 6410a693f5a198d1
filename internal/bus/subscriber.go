// MQTT subscription with an explicit bounded queue between the client
// callback and the consumer, so ordering and overflow behavior are owned
// here instead of being implicit in the client library's dispatcher.
package bus

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Message is one received bus message with its local arrival time.
type Message struct {
	Topic    string
	Payload  []byte
	Received time.Time
}

// Connect dials the broker and waits for the connection to come up.
func Connect(broker, clientID string, timeout time.Duration) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(true).
		SetOrderMatters(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect %s: timed out after %s", broker, timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	return client, nil
}

// Subscriber bridges one topic into a bounded channel. Messages that arrive
// while the queue is full are dropped and counted; accepted messages keep
// their arrival order.
type Subscriber struct {
	client  mqtt.Client
	topic   string
	qos     byte
	dropped atomic.Uint64

	mu      sync.Mutex
	stopped bool
	msgs    chan Message
}

// NewSubscriber prepares a subscriber with the given queue depth.
func NewSubscriber(client mqtt.Client, topic string, qos byte, depth int) *Subscriber {
	return &Subscriber{
		client: client,
		topic:  topic,
		qos:    qos,
		msgs:   make(chan Message, depth),
	}
}

// Start subscribes to the topic. Received messages become available on
// Messages.
func (s *Subscriber) Start() error {
	token := s.client.Subscribe(s.topic, s.qos, s.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.topic, err)
	}
	return nil
}

func (s *Subscriber) onMessage(_ mqtt.Client, m mqtt.Message) {
	s.enqueue(Message{
		Topic:    m.Topic(),
		Payload:  m.Payload(),
		Received: time.Now(),
	})
}

// enqueue offers a message to the queue, dropping it when full or already
// stopped. Returns whether the message was accepted. The client dispatcher
// can still deliver into onMessage after Unsubscribe acks, so the stopped
// check has to happen under the same lock closeQueue takes.
func (s *Subscriber) enqueue(msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		s.dropped.Add(1)
		return false
	}
	select {
	case s.msgs <- msg:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Messages is the ordered stream of accepted messages. The channel closes
// after Stop.
func (s *Subscriber) Messages() <-chan Message {
	return s.msgs
}

// Dropped reports how many messages were discarded due to a full queue.
func (s *Subscriber) Dropped() uint64 {
	return s.dropped.Load()
}

// Stop unsubscribes and closes the message channel. No messages are
// enqueued after Stop returns; late deliveries count as dropped.
func (s *Subscriber) Stop() {
	token := s.client.Unsubscribe(s.topic)
	token.Wait()
	s.closeQueue()
}

// closeQueue marks the queue stopped and closes it at most once.
func (s *Subscriber) closeQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.msgs)
}
