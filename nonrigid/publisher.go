package nonrigid

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher publishes registration progress to MQTT. Publishing failures are
// logged and never abort a run.
type Publisher struct {
	client        mqtt.Client
	publishPrefix string
	qos           byte
	published     int
	mu            sync.Mutex
}

// NewPublisher creates a progress publisher. A nil client disables publishing.
func NewPublisher(client mqtt.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = "gbpcm"
	}
	return &Publisher{
		client:        client,
		publishPrefix: prefix,
		qos:           0,
	}
}

// IterationTopic returns the topic of per-iteration reports of a run.
func (p *Publisher) IterationTopic(runID string) string {
	return fmt.Sprintf("%s/%s/iteration", p.publishPrefix, runID)
}

// SummaryTopic returns the topic of the final report of a run.
func (p *Publisher) SummaryTopic(runID string) string {
	return fmt.Sprintf("%s/%s/summary", p.publishPrefix, runID)
}

// ReportIteration publishes one iteration report.
func (p *Publisher) ReportIteration(r IterationReport) {
	if err := p.publish(p.IterationTopic(r.RunID), r, false); err != nil {
		log.Printf("Error publishing iteration %d: %v", r.Iteration, err)
	}
}

// ReportSummary publishes the run summary, retained so late subscribers see it.
func (p *Publisher) ReportSummary(s RunSummary) {
	if err := p.publish(p.SummaryTopic(s.RunID), s, true); err != nil {
		log.Printf("Error publishing summary: %v", err)
	}
}

// Published returns the number of messages accepted by the client.
func (p *Publisher) Published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published
}

const publishTimeout = 2 * time.Second

func (p *Publisher) publish(topic string, v interface{}, retain bool) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	token := p.client.Publish(topic, p.qos, retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publishing to %s: timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	p.published++
	return nil
}
