// Package respond builds the wire payload written on the error path.
//
// Every normalized failure is rendered as exactly two string fields:
//
//	{"code":"ERR-002","message":"Resource not found: chat 42."}
//
// The failure's detail string is untrusted input. Serialization goes through
// encoding/json, so quotes, backslashes, and control characters in the
// detail can never break out of the message value or inject extra keys;
// the body always parses as valid JSON regardless of failure content.
package respond

import (
	"encoding/json"

	"github.com/Harshit978/ErrorHandler/internal/errdef"
)

// Payload is the error envelope returned to clients. It is constructed
// fresh per failure and never cached across requests.
type Payload struct {
	// Code is the stable, machine-readable identifier (see errdef).
	Code string `json:"code"`
	// Message is the human-readable description with the failure detail
	// substituted into the descriptor's template.
	Message string `json:"message"`
}

// Build renders the payload for a resolved descriptor and the failure that
// produced it. The detail string is err.Error(); a nil failure yields the
// template verbatim.
func Build(desc errdef.Descriptor, err error) Payload {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return Payload{Code: desc.Code, Message: desc.Format(detail)}
}

// Marshal serializes p. encoding/json cannot fail on a struct of two
// strings, but the error is surfaced anyway so callers never silently drop
// a body.
func Marshal(p Payload) ([]byte, error) {
	return json.Marshal(p)
}
