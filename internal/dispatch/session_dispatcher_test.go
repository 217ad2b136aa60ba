package dispatch

import (
	"testing"

	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/protocol"
	"github.com/sbgstream/sbgstream/internal/stream"
)

func sessionInfoFrame(pageIndex, nrPages uint16, data string) protocol.Frame {
	w := stream.NewWriter(4 + len(data))
	w.WriteUint16LE(pageIndex)
	w.WriteUint16LE(nrPages)
	w.WriteBytes([]byte(data))
	return protocol.Frame{Class: messages.ClassLog, ID: messages.IDSessionInfo, Payload: w.Bytes()}
}

func TestDispatcherAssemblesSessionInfoAcrossFrames(t *testing.T) {
	d := NewDispatcher()

	if _, err := d.Dispatch(sessionInfoFrame(0, 2, "hello-")); err != errcode.NotReady {
		t.Fatalf("page 0: err = %v, want NotReady", err)
	}

	m, err := d.Dispatch(sessionInfoFrame(1, 2, "world"))
	if err != nil {
		t.Fatalf("page 1: unexpected error %v", err)
	}
	if m.Kind != messages.KindSessionInfo || m.SessionInfo == nil || m.SessionInfo.Text != "hello-world" {
		t.Fatalf("unexpected assembled message: %+v", m)
	}
}

func TestDispatcherFallsThroughToStatelessDispatch(t *testing.T) {
	d := NewDispatcher()
	w := stream.NewWriter(10)
	w.WriteUint32LE(0)
	w.WriteUint16LE(0)
	w.WriteFloat32LE(3.5)
	f := protocol.Frame{Class: messages.ClassLog, ID: messages.IDOdoVel, Payload: w.Bytes()}

	m, err := d.Dispatch(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != messages.KindOdometer || m.Odometer.Velocity != 3.5 {
		t.Fatalf("unexpected message: %+v", m)
	}
}
