package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Event is an external event-marker timestamp log. Seven ids (A-E, Out-A,
// Out-B) alias this schema; EventChannel on the containing Message
// distinguishes them.
type Event struct {
	TimeStamp  uint32
	Status     uint16
	TimeOffset [4]uint16
}

// decodeEvent returns a decoder bound to a specific event channel, so the
// single payload schema can be registered under all seven aliased ids.
func decodeEvent(ch EventChannel) decodeFunc {
	return func(r *stream.Buffer) (Message, error) {
		d := &Event{}
		d.TimeStamp = r.ReadUint32LE()
		d.Status = r.ReadUint16LE()
		for i := range d.TimeOffset {
			d.TimeOffset[i] = r.ReadUint16LE()
		}
		if code := r.LastError(); !code.OK() {
			return Message{}, code
		}
		return Message{Kind: KindEvent, Event: d, EventChannel: ch}, nil
	}
}

func encodeEvent(m Message) []byte {
	d := m.Event
	w := stream.NewWriter(14)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	for _, v := range d.TimeOffset {
		w.WriteUint16LE(v)
	}
	return w.Bytes()
}
