// Package command implements the request/response channel used to
// configure and control the device, reusing the stream codec and frame
// framing from internal/protocol rather than inventing a new wire format.
package command

import "github.com/sbgstream/sbgstream/internal/protocol"

// ClassCommand marks a frame as carrying a command rather than a
// telemetry log, distinguishing it from protocol.Frame values produced by
// the device's own log stream.
const ClassCommand uint8 = 2

// Command is an outbound request: Op identifies the operation (e.g. "set
// output rate", "get status") and Args carries its operation-specific
// payload.
type Command struct {
	Op   uint16
	Args []byte
}

// Encode serializes c into a complete wire frame ready to write to a
// transport.Source.
func Encode(c Command) []byte {
	return protocol.Encode(protocol.Frame{Class: ClassCommand, ID: c.Op, Payload: c.Args})
}

// FromFrame extracts a Command from a frame the reassembler has already
// validated, returning ok=false if f does not carry class ClassCommand.
func FromFrame(f protocol.Frame) (Command, bool) {
	if f.Class != ClassCommand {
		return Command{}, false
	}
	return Command{Op: f.ID, Args: f.Payload}, true
}
