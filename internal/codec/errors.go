package codec

import (
	"errors"
	"fmt"
)

// ErrNoDocument is matched by every decode failure. Callers that only care
// whether a document came out of a payload test for this.
var ErrNoDocument = errors.New("no document decoded")

// ErrTooLarge is wrapped by a decompress-stage error when the inflated
// payload exceeds the decoder's cap.
var ErrTooLarge = errors.New("decoded payload exceeds size limit")

// Stage identifies which step of the decode pipeline failed.
type Stage int

const (
	StageTransport Stage = iota + 1
	StageDecompress
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageTransport:
		return "transport"
	case StageDecompress:
		return "decompress"
	case StageParse:
		return "parse"
	default:
		return "unknown"
	}
}

// DecodeError carries the failing stage for logging. It is reported to users
// only as ErrNoDocument.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrNoDocument.
func (e *DecodeError) Is(target error) bool {
	return target == ErrNoDocument
}
