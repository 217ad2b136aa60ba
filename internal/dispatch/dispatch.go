// Package dispatch ties the frame layer to the message catalogue: given a
// decoded frame's class, id, and payload, it looks up and runs the right
// decoder, counting misses for unrecognised (class, id) pairs.
package dispatch

import (
	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/metrics"
	"github.com/sbgstream/sbgstream/internal/protocol"
	"github.com/sbgstream/sbgstream/internal/stream"
)

// Dispatch decodes f's payload according to its (Class, ID) and returns the
// resulting Message. An unrecognised (class, id) pair is not an error in
// the protocol sense — it is reported as errcode.Error, matching the
// reference decoder's default-case behavior, and counted as a dispatch
// miss so operators can see unknown traffic without the stream stalling.
func Dispatch(f protocol.Frame) (messages.Message, error) {
	decode, _, ok := messages.Lookup(f.Class, f.ID)
	if !ok {
		metrics.IncDispatchMiss()
		return messages.Message{}, errcode.Error
	}

	m, err := decode(stream.NewReader(f.Payload))
	if err != nil {
		return messages.Message{}, err
	}
	return m, nil
}
