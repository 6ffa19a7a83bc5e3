package garagestatus

import (
	"context"
	"errors"
)

// A persistence backend for reading batches. Write reports how many
// rows were durably stored; an empty batch is a no-op success for every
// implementation. Batches are written all-or-nothing, there are no
// partial inserts and no retries.
type Sink interface {
	Write(ctx context.Context, readings []Reading) (int, error)
}

var (
	// the sink is missing credentials or a database path; callers may
	// treat this as non-fatal and skip persistence
	ErrSinkConfig = errors.New("sink is not configured")
	// transport or transaction failure while persisting a batch
	ErrSinkWrite = errors.New("failed to write readings to sink")
)

// response bodies quoted in sink errors are cut off past this length
const maxErrorDetail = 512
