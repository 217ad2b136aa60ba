package dispatch

import (
	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/messages"
	"github.com/sbgstream/sbgstream/internal/protocol"
	"github.com/sbgstream/sbgstream/internal/session"
)

// Dispatcher wraps the stateless Dispatch function with the one piece of
// per-connection state the catalogue cannot express on its own: session-info
// reassembly, which spans multiple frames. One Dispatcher belongs to one
// ingestion source.
type Dispatcher struct {
	sessionInfo session.Context
}

// NewDispatcher returns a Dispatcher ready to use.
func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Dispatch decodes f, routing session-info pages through the reassembler and
// everything else through the stateless catalogue lookup. A session-info
// page that does not yet complete the blob returns errcode.NotReady, which
// callers already treat the same as any other non-fatal dispatch miss.
func (d *Dispatcher) Dispatch(f protocol.Frame) (messages.Message, error) {
	if f.Class == messages.ClassLog && f.ID == messages.IDSessionInfo {
		return d.dispatchSessionInfo(f.Payload)
	}
	return Dispatch(f)
}

func (d *Dispatcher) dispatchSessionInfo(payload []byte) (messages.Message, error) {
	page, ok := messages.DecodeSessionInfoPage(payload)
	if !ok {
		return messages.Message{}, errcode.InvalidFrame
	}
	if code := d.sessionInfo.Process(page.PageIndex, page.NrPages, page.Data); !code.OK() {
		return messages.Message{}, code
	}
	text, _ := d.sessionInfo.String()
	return messages.Message{Kind: messages.KindSessionInfo, SessionInfo: &messages.SessionInfo{Text: text}}, nil
}
