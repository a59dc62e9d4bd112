package phraseprovider

import (
	"encoding/json"
	"testing"

	"drafter/internal/phrase"
)

func TestRephraseRequestMessageRoundTrip(t *testing.T) {
	msg := Message{
		Type: TypeRephraseRequest,
		ID:   7,
		Payload: RephraseRequestPayload{
			Paragraph:      "a short paragraph",
			MaxSuggestions: 3,
		},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Type    MessageType            `json:"type"`
		ID      uint64                 `json:"id"`
		Payload RephraseRequestPayload `json:"payload"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != TypeRephraseRequest || got.ID != 7 || got.Payload.MaxSuggestions != 3 {
		t.Errorf("got %+v, want id 7 with max_suggestions 3", got)
	}
}

func TestRephraseResponseMessageRoundTrip(t *testing.T) {
	msg := Message{
		Type: TypeRephraseResponse,
		ID:   7,
		Payload: RephraseResponsePayload{
			Alternatives: []phrase.Alternative{{Original: "short", Alternative: "brief"}},
		},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Type    MessageType             `json:"type"`
		Payload RephraseResponsePayload `json:"payload"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Payload.Alternatives) != 1 || got.Payload.Alternatives[0].Original != "short" {
		t.Errorf("got %+v, want one alternative for \"short\"", got.Payload)
	}
}

func TestNewClientHasNoConnectionUntilUsed(t *testing.T) {
	c := New("127.0.0.1:1")
	if c.conn != nil {
		t.Error("expected a fresh Client to have no connection yet")
	}
}
