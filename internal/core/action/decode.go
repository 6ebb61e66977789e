package action

import (
	"bytes"
	"encoding/json"
)

// envelope mirrors the fixed interpreter output schema:
// {action, status, message, payload}.
type envelope struct {
	Action  string          `json:"action"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses raw interpreter output. Malformed JSON, an unrecognized
// action kind, or a payload missing a required field all decode to a safe
// variant: unknown/error for broken envelopes, (KindUnknown, ErrPayload)
// for recognized kinds with unusable payloads.
func Decode(raw []byte) (Action, error) {
	// Models wrap JSON in markdown fences often enough to strip them here.
	raw = trimFences(raw)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Action{
			Kind:    KindUnknown,
			Status:  StatusError,
			Message: "the assistant returned an unreadable response",
		}, nil
	}

	act := Action{
		Kind:    KindUnknown,
		Status:  env.Status,
		Message: env.Message,
	}
	if act.Status == "" {
		act.Status = StatusError
	}
	if env.Status == StatusError {
		return act, nil
	}

	switch Kind(env.Action) {
	case KindTakeCharge:
		var p TakeChargePayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return act, err
		}
		if p.JobID == "" {
			return act, payloadError("take_charge requires jobId")
		}
		act.Kind = KindTakeCharge
		act.TakeCharge = &p

	case KindUpdateJob:
		var p UpdatePayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return act, err
		}
		if p.JobID == "" {
			return act, payloadError("update_job requires jobId")
		}
		act.Kind = KindUpdateJob
		act.Update = &p

	case KindGetCalendar:
		var p CalendarPayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return act, err
		}
		if p.Month < 1 || p.Month > 12 {
			return act, payloadError("get_calendar requires month 1-12, got %d", p.Month)
		}
		if p.Year == 0 {
			return act, payloadError("get_calendar requires year")
		}
		act.Kind = KindGetCalendar
		act.Calendar = &p

	case KindAddNote:
		var p NotePayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return act, err
		}
		if p.JobID == "" {
			return act, payloadError("add_note requires jobId")
		}
		act.Kind = KindAddNote
		act.Note = &p

	case KindListJobs:
		var p ListPayload
		if len(env.Payload) > 0 {
			if err := unmarshalPayload(env.Payload, &p); err != nil {
				return act, err
			}
		}
		act.Kind = KindListJobs
		act.List = &p

	default:
		// Reserved/unrecognized kinds stay inert.
	}

	return act, nil
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return payloadError("payload is required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return payloadError("payload does not match schema: %v", err)
	}
	return nil
}

func trimFences(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if !bytes.HasPrefix(raw, []byte("```")) {
		return raw
	}
	raw = bytes.TrimPrefix(raw, []byte("```json"))
	raw = bytes.TrimPrefix(raw, []byte("```"))
	raw = bytes.TrimSuffix(bytes.TrimSpace(raw), []byte("```"))
	return bytes.TrimSpace(raw)
}
