// Package jobmessage defines the queue messages flowing between the
// API server and the separation worker.
package jobmessage

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	StartJobType      = "start_job"
	SeparateStemsType = "separate_stems"
	SaveStemsType     = "save_stems"
)

type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type StartJobPayload struct {
	JobID string `json:"job_id"`
}

type SeparateStemsPayload struct {
	JobID     string  `json:"job_id"`
	SourceURL string  `json:"source_url"`
	Mode      string  `json:"mode"`
	Quality   string  `json:"quality"`
	Strength  float64 `json:"strength"`
}

type SaveStemsPayload struct {
	JobID            string `json:"job_id"`
	VocalsURL        string `json:"vocals_url"`
	AccompanimentURL string `json:"accompaniment_url"`
}

func Create(msgType string, payload any) (amqp.Publishing, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, errors.Wrap(err, "Failed to marshal message payload")
	}

	body, err := json.Marshal(Envelope{
		Type:    msgType,
		Payload: payloadJSON,
	})
	if err != nil {
		return amqp.Publishing{}, errors.Wrap(err, "Failed to marshal message envelope")
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         msgType,
		Body:         body,
	}, nil
}

func Decode(body []byte) (Envelope, error) {
	envelope := Envelope{}
	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return Envelope{}, errors.Wrap(err, "Failed to unmarshal message envelope")
	}

	return envelope, nil
}

func DecodePayload[T any](envelope Envelope) (T, error) {
	var payload T
	err := json.Unmarshal(envelope.Payload, &payload)
	if err != nil {
		return payload, errors.Wrap(err, "Failed to unmarshal message payload")
	}

	return payload, nil
}
