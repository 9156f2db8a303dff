package mq

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "booking.exchange"}

	err := p.PublishJSON(context.Background(), "booking.confirmed", map[string]any{"appointment_id": 7})
	if err != nil {
		t.Fatal(err)
	}

	if ch.exchange != "booking.exchange" || ch.key != "booking.confirmed" {
		t.Fatalf("published to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.ContentType != "application/json" || ch.msg.DeliveryMode != amqp.Persistent {
		t.Fatalf("unexpected publishing %+v", ch.msg)
	}
	var body map[string]int
	if err := json.Unmarshal(ch.msg.Body, &body); err != nil || body["appointment_id"] != 7 {
		t.Fatalf("unexpected body %s", ch.msg.Body)
	}
}

func TestPublishJSONRejectsUnencodable(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{}, exchange: "x"}
	if err := p.PublishJSON(context.Background(), "k", make(chan int)); err == nil {
		t.Fatal("expected an encoding error")
	}
}

func TestCloseWithoutConnection(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !ch.closed {
		t.Fatal("channel not closed")
	}
}
