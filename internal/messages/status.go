package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Status is the device general-health log. Uptime was added in a later
// protocol version; absent on older payloads, it defaults to zero.
type Status struct {
	TimeStamp     uint32
	GeneralStatus uint16
	ComStatus2    uint16
	ComStatus     uint32
	AidingStatus  uint32
	Reserved2     uint32
	Reserved3     uint16
	Uptime        uint32
}

func decodeStatus(r *stream.Buffer) (Message, error) {
	d := &Status{}
	d.TimeStamp = r.ReadUint32LE()
	d.GeneralStatus = r.ReadUint16LE()
	d.ComStatus2 = r.ReadUint16LE()
	d.ComStatus = r.ReadUint32LE()
	d.AidingStatus = r.ReadUint32LE()
	d.Reserved2 = r.ReadUint32LE()
	d.Reserved3 = r.ReadUint16LE()

	if r.Space() >= 4 {
		d.Uptime = r.ReadUint32LE()
	} else {
		d.Uptime = 0
	}

	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindStatus, Status: d}, nil
}

func encodeStatus(m Message) []byte {
	d := m.Status
	w := stream.NewWriter(24)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.GeneralStatus)
	w.WriteUint16LE(d.ComStatus2)
	w.WriteUint32LE(d.ComStatus)
	w.WriteUint32LE(d.AidingStatus)
	w.WriteUint32LE(d.Reserved2)
	w.WriteUint16LE(d.Reserved3)
	w.WriteUint32LE(d.Uptime)
	return w.Bytes()
}
