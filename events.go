package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TransferTopic = "gateway_transfer"
)

type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KWriter{
		w: w,
	}, nil
}

func (kw *KWriter) Write(body []byte) error {
	err := kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Value: body,
		},
	)
	return err
}

func (kw *KWriter) Close() {
	kw.w.Close()
}

// TransferEvent records one attested vault transfer.
type TransferEvent struct {
	EventId      string               `json:"eventId"`
	Depositor    string               `json:"depositor"`
	TotalAmount  string               `json:"totalAmount"`
	Attestations []schema.Attestation `json:"attestations"`
	Timestamp    int64                `json:"timestamp"`
}

func (g *Gateway) publishTransferEvent(depositor, totalAmount string, attestations []schema.Attestation) {
	if g.events == nil {
		return
	}
	ev := TransferEvent{
		EventId:      uuid.NewString(),
		Depositor:    strings.ToLower(depositor),
		TotalAmount:  totalAmount,
		Attestations: attestations,
		Timestamp:    time.Now().Unix(),
	}
	body, err := json.Marshal(&ev)
	if err != nil {
		log.Error("marshal transfer event failed", "err", err)
		return
	}
	go func() {
		if err := g.events.Write(body); err != nil {
			log.Error("publish transfer event failed", "eventId", ev.EventId, "err", err)
		}
	}()
}
