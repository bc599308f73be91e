// Package codec converts garden documents to and from the URL-safe payload
// carried in a viewer link's data parameter.
//
// The pipeline is JSON, then zlib (deflate) compression, then base64 with the
// URL-safe alphabet and no padding.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// DefaultMaxDecodedBytes caps the inflated size of a payload.
const DefaultMaxDecodedBytes = 8 << 20

// QueryParam is the link query parameter that carries the payload.
const QueryParam = "data"

// Encode serializes v and returns its payload string.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("create compressor: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compress document: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress document: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decoder reverses Encode.
type Decoder struct {
	// MaxDecodedBytes bounds the inflated payload. Zero or negative means
	// DefaultMaxDecodedBytes.
	MaxDecodedBytes int64
}

// NewDecoder creates a decoder with the given inflated-size cap.
func NewDecoder(maxDecodedBytes int64) *Decoder {
	return &Decoder{MaxDecodedBytes: maxDecodedBytes}
}

// Limit returns the effective inflated-size cap.
func (d *Decoder) Limit() int64 {
	if d == nil || d.MaxDecodedBytes <= 0 {
		return DefaultMaxDecodedBytes
	}
	return d.MaxDecodedBytes
}

// Decode turns a payload back into JSON text. The returned text is
// syntactically valid JSON; its shape is not checked here. Every failure is
// a *DecodeError.
func (d *Decoder) Decode(payload string) (json.RawMessage, error) {
	compressed, err := decodeTransport(payload)
	if err != nil {
		return nil, &DecodeError{Stage: StageTransport, Err: err}
	}

	text, err := d.inflate(compressed)
	if err != nil {
		return nil, &DecodeError{Stage: StageDecompress, Err: err}
	}

	if !json.Valid(text) {
		return nil, &DecodeError{Stage: StageParse, Err: fmt.Errorf("payload is not valid JSON")}
	}
	return json.RawMessage(text), nil
}

func (d *Decoder) inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	limit := d.Limit()
	text, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(text)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return text, nil
}

// decodeTransport restores the standard base64 alphabet and padding before
// decoding.
func decodeTransport(payload string) ([]byte, error) {
	s := strings.TrimSpace(payload)
	if s == "" {
		return nil, fmt.Errorf("empty payload")
	}
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return base64.StdEncoding.DecodeString(s)
}

// Link builds a viewer link for the payload. Existing query parameters on
// baseURL are kept.
func Link(baseURL, payload string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set(QueryParam, payload)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// PayloadFromLink extracts the payload from a viewer link. Input that does
// not look like a link is returned as a bare payload. An empty result means
// the link has no data parameter.
func PayloadFromLink(s string) string {
	s = strings.TrimSpace(s)
	if !looksLikeLink(s) {
		return s
	}

	query := s
	if i := strings.IndexByte(s, '?'); i >= 0 {
		query = s[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	return values.Get(QueryParam)
}

// looksLikeLink reports whether s is a URL, path or query rather than a bare
// payload. Payloads use the URL-safe base64 alphabet, which has no ':', '/'
// or '?'.
func looksLikeLink(s string) bool {
	return strings.ContainsAny(s, ":/?") || strings.HasPrefix(s, QueryParam+"=")
}
