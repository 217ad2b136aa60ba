package server

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/sbgstream/sbgstream/internal/command"
	"github.com/sbgstream/sbgstream/internal/messages"
)

// clientCommand is the line-delimited JSON a relay client sends upstream to
// request a command be written to the device. Args round-trips through
// encoding/json's standard base64 []byte encoding.
type clientCommand struct {
	Op   uint16 `json:"op"`
	Args []byte `json:"args,omitempty"`
}

func (c clientCommand) toCommand() command.Command {
	return command.Command{Op: c.Op, Args: c.Args}
}

// commandScanner reads newline-delimited JSON command requests from a relay
// client's inbound half of the connection.
type commandScanner struct {
	sc *bufio.Scanner
}

func newCommandScanner(r io.Reader) *commandScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), 1<<20)
	return &commandScanner{sc: sc}
}

// next blocks until a full command line is available, returning io.EOF once
// the connection is closed or its Scanner's error otherwise.
func (cs *commandScanner) next() (command.Command, error) {
	if !cs.sc.Scan() {
		if err := cs.sc.Err(); err != nil {
			return command.Command{}, err
		}
		return command.Command{}, io.EOF
	}
	var cc clientCommand
	if err := json.Unmarshal(cs.sc.Bytes(), &cc); err != nil {
		return command.Command{}, err
	}
	return cc.toCommand(), nil
}

// encodeMessage serializes a decoded telemetry message as one newline
// terminated JSON line.
func encodeMessage(m messages.Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
