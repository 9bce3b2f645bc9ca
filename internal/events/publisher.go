// Package events publishes engine activity to NATS for downstream analytics.
// Publishing is strictly fire-and-forget: the match pipeline never depends on
// a broker being up.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subjects.
const (
	SubjectMatchesComputed = "exchange.matches.computed"
	SubjectChainsComputed  = "exchange.chains.computed"
)

// MatchesComputed is emitted after each pairwise match computation.
type MatchesComputed struct {
	OriginListingID string    `json:"origin_listing_id"`
	ResultCount     int       `json:"result_count"`
	TopScore        int       `json:"top_score,omitempty"`
	ComputedAt      time.Time `json:"computed_at"`
}

// ChainsComputed is emitted after each chain detection run.
type ChainsComputed struct {
	OriginListingID string    `json:"origin_listing_id"`
	ChainCount      int       `json:"chain_count"`
	ComputedAt      time.Time `json:"computed_at"`
}

// Publisher sends engine events to a subject. Satisfied by *NATSPublisher.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}

// NATSPublisher publishes JSON-encoded events over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish sends one JSON-encoded event.
func (p *NATSPublisher) Publish(_ context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}
