package whatsapp

import (
	"encoding/json"
	"fmt"

	"invoice-extract/bot"
)

// Envelope is the webhook payload posted by the Cloud API.
type Envelope struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []InboundMessage `json:"messages"`
}

type InboundMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Image *struct {
		ID       string `json:"id"`
		MimeType string `json:"mime_type"`
	} `json:"image,omitempty"`
}

// ParseEnvelope decodes a webhook body.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode webhook envelope: %w", err)
	}
	return &env, nil
}

// FirstMessage returns the first message of the first change of the first
// entry. ok is false for status callbacks and other payloads without one.
func (e *Envelope) FirstMessage() (bot.Message, bool) {
	if e == nil || len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return bot.Message{}, false
	}
	msgs := e.Entry[0].Changes[0].Value.Messages
	if len(msgs) == 0 {
		return bot.Message{}, false
	}
	return msgs[0].toMessage(), true
}

func (m InboundMessage) toMessage() bot.Message {
	msg := bot.Message{
		ID:     m.ID,
		Sender: m.From,
		Kind:   bot.KindOf(m.Type),
		Type:   m.Type,
	}
	switch msg.Kind {
	case bot.KindText:
		if m.Text != nil {
			msg.Body = m.Text.Body
		}
	case bot.KindImage:
		if m.Image != nil {
			msg.MediaID = m.Image.ID
		}
	}
	return msg
}
