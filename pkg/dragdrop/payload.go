package dragdrop

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// Kind tells what a gesture carries
type Kind string

const (
	KindTemplate Kind = "template"
	KindAlarm    Kind = "alarm"
)

// ErrMalformedPayload wraps every decoding failure
var ErrMalformedPayload = errors.New("malformed drag payload")

// Payload is the data transferred by a drag. Templates carry their index and
// a copy of the note, alarms carry their id.
type Payload struct {
	Kind         Kind               `json:"kind"`
	PaletteIndex int                `json:"paletteIndex,omitempty"`
	AlarmID      string             `json:"alarmId,omitempty"`
	Note         models.PaletteNote `json:"note"`
}

// TemplatePayload describes a drag starting on palette entry index
func TemplatePayload(index int, note models.PaletteNote) Payload {
	return Payload{Kind: KindTemplate, PaletteIndex: index, Note: note}
}

// AlarmPayload describes a drag starting on an alarm note
func AlarmPayload(alarm models.Alarm) Payload {
	return Payload{
		Kind:    KindAlarm,
		AlarmID: alarm.ID,
		Note:    models.PaletteNote{Color: alarm.Color, Label: alarm.Text, Icon: alarm.Icon},
	}
}

// EncodePayload serializes p for transfer
func EncodePayload(p Payload) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// DecodePayload parses and validates transferred data
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := p.validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

func (p Payload) validate() error {
	switch p.Kind {
	case KindTemplate:
		if p.PaletteIndex < 0 {
			return fmt.Errorf("%w: negative palette index %d", ErrMalformedPayload, p.PaletteIndex)
		}
	case KindAlarm:
		if p.AlarmID == "" {
			return fmt.Errorf("%w: alarm payload without id", ErrMalformedPayload)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedPayload, p.Kind)
	}
	return nil
}
