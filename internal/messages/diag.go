package messages

import (
	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/protocol"
	"github.com/sbgstream/sbgstream/internal/stream"
)

// DebugLevel classifies a Diag log's severity.
type DebugLevel uint8

const (
	DebugTrace DebugLevel = iota
	DebugDebug
	DebugInfo
	DebugWarning
	DebugError
	DebugCritical
)

// DiagMaxStringSize is the largest message string a Diag log can carry,
// the frame's maximum payload size less the fixed-size header fields
// (timestamp, level, error code).
const DiagMaxStringSize = protocol.MaxPayloadSize - 6

// Diag is a device-internal diagnostic log line.
type Diag struct {
	TimeStamp uint32
	Level     DebugLevel
	ErrorCode errcode.Code
	Message   string
}

func decodeDiag(r *stream.Buffer) (Message, error) {
	d := &Diag{}
	d.TimeStamp = r.ReadUint32LE()
	d.Level = DebugLevel(r.ReadUint8())
	d.ErrorCode = errcode.Code(r.ReadUint8())

	size := r.Space()
	if size > DiagMaxStringSize {
		return Message{}, errcode.BufferOverflow
	}
	raw := r.ReadBytes(size)
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}

	// The wire string is null-terminated; trim at the first NUL.
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	d.Message = string(raw[:end])

	return Message{Kind: KindDiag, Diag: d}, nil
}

func encodeDiag(m Message) []byte {
	d := m.Diag
	w := stream.NewWriter(6 + len(d.Message) + 1)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint8(uint8(d.Level))
	w.WriteUint8(uint8(d.ErrorCode))
	w.WriteBytes([]byte(d.Message))
	w.WriteUint8(0)
	return w.Bytes()
}
