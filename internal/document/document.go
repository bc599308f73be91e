// Package document validates decoded garden documents and runs the full
// link-to-document load pipeline.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/models"
)

// Rejection reasons returned by Validate.
var (
	ErrNotObject   = errors.New("document is not a JSON object")
	ErrMissingName = errors.New("document has no name")
	ErrMalformed   = errors.New("document fields do not match the garden schema")
)

// User-visible messages. Decode and validation failures share one text.
const (
	MsgNoDocument = "No valid garden data found in URL."
	MsgUnexpected = "An error occurred while loading the garden."
	MsgGetALink   = "Ask your garden planner for a viewer link, then open it here."
)

// Validate applies the structural gate to decoded JSON: the value must be an
// object and must carry a non-empty name. Nothing is normalized.
func Validate(raw json.RawMessage) (*models.Garden, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	var head struct {
		Name any `json:"name"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	name, ok := head.Name.(string)
	if !ok || name == "" {
		return nil, ErrMissingName
	}

	var g models.Garden
	if err := json.Unmarshal(trimmed, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &g, nil
}

// Load decodes a payload and validates the result. A nil decoder uses the
// default size cap.
func Load(payload string, dec *codec.Decoder) (*models.Garden, error) {
	if dec == nil {
		dec = codec.NewDecoder(0)
	}
	raw, err := dec.Decode(payload)
	if err != nil {
		return nil, err
	}
	return Validate(raw)
}

// LoadLink extracts the payload from a viewer link (or bare payload) and
// loads it.
func LoadLink(link string, dec *codec.Decoder) (*models.Garden, error) {
	payload := codec.PayloadFromLink(link)
	if payload == "" {
		return nil, &codec.DecodeError{Stage: codec.StageTransport, Err: errors.New("link has no data parameter")}
	}
	return Load(payload, dec)
}

// Rejected reports whether err is a decode or validation failure, as opposed
// to an unexpected one.
func Rejected(err error) bool {
	return errors.Is(err, codec.ErrNoDocument) ||
		errors.Is(err, ErrNotObject) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMalformed)
}

// UserMessage maps a load error to the text shown to users. Diagnostics stay
// in the logs.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if Rejected(err) {
		return MsgNoDocument
	}
	return MsgUnexpected
}

// Stage names the pipeline step that rejected a document, for logs.
func Stage(err error) string {
	var de *codec.DecodeError
	if errors.As(err, &de) {
		return de.Stage.String()
	}
	if Rejected(err) {
		return "validate"
	}
	return "unknown"
}
