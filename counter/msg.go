package counter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// InitMsg carries the initial count. It is the payload of Instantiate.
type InitMsg struct {
	Count int32 `json:"count" jsonschema:"required"`
}

// ExecuteMsg is a tagged union: exactly one variant must be set.
//
//	{"increment": {}}
//	{"reset": {"count": 5}}
type ExecuteMsg struct {
	// Increment adds one to the count. Any caller may send it.
	Increment *IncrementMsg `json:"increment,omitempty" jsonschema:"oneof_required=increment"`
	// Reset overwrites the count. Only the owner may send it.
	Reset *ResetMsg `json:"reset,omitempty" jsonschema:"oneof_required=reset"`
}

type IncrementMsg struct{}

type ResetMsg struct {
	Count int32 `json:"count" jsonschema:"required"`
}

// QueryMsg is a tagged union of read-only requests.
//
//	{"get_count": {}}
type QueryMsg struct {
	GetCount *GetCountMsg `json:"get_count,omitempty" jsonschema:"oneof_required=get_count"`
}

type GetCountMsg struct{}

// CountResponse answers a get_count query
type CountResponse struct {
	Count int32 `json:"count"`
}

// Validate checks that exactly one variant is set
func (m ExecuteMsg) Validate() error {
	n := 0
	if m.Increment != nil {
		n++
	}
	if m.Reset != nil {
		n++
	}
	if n != 1 {
		return fmt.Errorf("%w: execute message must set exactly one variant, got %d", ErrInvalidMessage, n)
	}
	return nil
}

// Validate checks that exactly one variant is set
func (m QueryMsg) Validate() error {
	if m.GetCount == nil {
		return fmt.Errorf("%w: query message must set exactly one variant, got 0", ErrInvalidMessage)
	}
	return nil
}

// ParseInitMsg decodes an instantiate payload. The count field is mandatory.
func ParseInitMsg(data []byte) (InitMsg, error) {
	var raw struct {
		Count *int32 `json:"count"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return InitMsg{}, err
	}
	if raw.Count == nil {
		return InitMsg{}, fmt.Errorf("%w: missing field count", ErrInvalidMessage)
	}
	return InitMsg{Count: *raw.Count}, nil
}

// ParseExecuteMsg decodes and validates an execute payload
func ParseExecuteMsg(data []byte) (ExecuteMsg, error) {
	var raw struct {
		Increment *IncrementMsg `json:"increment"`
		Reset     *struct {
			Count *int32 `json:"count"`
		} `json:"reset"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return ExecuteMsg{}, err
	}

	msg := ExecuteMsg{Increment: raw.Increment}
	if raw.Reset != nil {
		if raw.Reset.Count == nil {
			return ExecuteMsg{}, fmt.Errorf("%w: reset: missing field count", ErrInvalidMessage)
		}
		msg.Reset = &ResetMsg{Count: *raw.Reset.Count}
	}
	if err := msg.Validate(); err != nil {
		return ExecuteMsg{}, err
	}
	return msg, nil
}

// ParseQueryMsg decodes and validates a query payload
func ParseQueryMsg(data []byte) (QueryMsg, error) {
	var msg QueryMsg
	if err := decodeStrict(data, &msg); err != nil {
		return QueryMsg{}, err
	}
	if err := msg.Validate(); err != nil {
		return QueryMsg{}, err
	}
	return msg, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after message", ErrInvalidMessage)
	}
	return nil
}
