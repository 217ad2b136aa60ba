package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// SessionInfo is the fully reassembled device session-identifying string,
// delivered piecewise across one or more pages and assembled by
// internal/dispatch before being surfaced here as a single Message.
type SessionInfo struct {
	Text string
}

// SessionInfoPage is one (pageIndex, nrPages, bytes) page of a session-info
// blob as carried on the wire: a 2-byte little-endian pageIndex, a 2-byte
// little-endian nrPages, followed by the page's raw bytes.
type SessionInfoPage struct {
	PageIndex uint16
	NrPages   uint16
	Data      []byte
}

// DecodeSessionInfoPage parses one wire page. The page layer has no
// completion state of its own; a stateful assembler (internal/session)
// reassembles a sequence of pages into a SessionInfo.
func DecodeSessionInfoPage(payload []byte) (SessionInfoPage, bool) {
	r := stream.NewReader(payload)
	pageIndex := r.ReadUint16LE()
	nrPages := r.ReadUint16LE()
	data := r.ReadBytes(r.Space())
	if code := r.LastError(); !code.OK() {
		return SessionInfoPage{}, false
	}
	return SessionInfoPage{PageIndex: pageIndex, NrPages: nrPages, Data: data}, true
}
