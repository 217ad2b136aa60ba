package dispatch

import (
	"testing"

	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/protocol"
)

func TestDispatchKnownMessage(t *testing.T) {
	in := messages.Message{Kind: messages.KindOdometer, Odometer: &messages.Odometer{
		TimeStamp: 1, Status: 2, Velocity: 3.5,
	}}
	_, encode, ok := messages.Lookup(messages.ClassLog, messages.IDOdoVel)
	if !ok {
		t.Fatal("catalogue missing odometer entry")
	}
	payload := encode(in)

	got, err := Dispatch(protocol.Frame{Class: messages.ClassLog, ID: messages.IDOdoVel, Payload: payload})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.Kind != messages.KindOdometer || *got.Odometer != *in.Odometer {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}

func TestDispatchUnknownIDReturnsGenericError(t *testing.T) {
	_, err := Dispatch(protocol.Frame{Class: messages.ClassLog, ID: 9999, Payload: nil})
	if err != errcode.Error {
		t.Fatalf("err = %v, want errcode.Error", err)
	}
}

func TestDispatchUnknownClassReturnsGenericError(t *testing.T) {
	_, err := Dispatch(protocol.Frame{Class: 77, ID: 1, Payload: nil})
	if err != errcode.Error {
		t.Fatalf("err = %v, want errcode.Error", err)
	}
}

func TestDispatchMalformedPayloadPropagatesDecodeError(t *testing.T) {
	// Odometer needs 10 bytes; give it fewer, expect a buffer overflow.
	_, err := Dispatch(protocol.Frame{Class: messages.ClassLog, ID: messages.IDOdoVel, Payload: []byte{1, 2, 3}})
	if err != errcode.BufferOverflow {
		t.Fatalf("err = %v, want BufferOverflow", err)
	}
}
