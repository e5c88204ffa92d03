package mqtt

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Topics the studio display clients subscribe to.
const (
	TopicNowPlaying = "station/now-playing"
	TopicPresenter  = "station/presenter"
)

// Publisher pushes now-playing and presenter updates to studio displays.
// Messages are retained so a display that reconnects immediately gets the
// current state.
type Publisher struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// NewPublisher connects to the broker. The paho client reconnects on its own
// after a drop; publishes during an outage fail and are just skipped until
// the next poll cycle.
func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	return &Publisher{client: client}, nil
}

// Publish sends a retained JSON payload to the given topic.
func (p *Publisher) Publish(topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := p.client.Publish(topic, 1, true, raw)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %v", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker, letting in-flight messages drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
	log.Info().Msg("MQTT publisher disconnected")
}
