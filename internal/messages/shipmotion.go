package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// ShipMotion is the vessel heave/surge/sway motion log. ShipVel and Status
// were added in a later protocol version; absent on older payloads, they
// default to zero.
type ShipMotion struct {
	TimeStamp       uint32
	MainHeavePeriod float32
	ShipMotion      [3]float32 // surge, sway, heave
	ShipAccel       [3]float32
	ShipVel         [3]float32
	Status          uint16
}

func decodeShipMotion(r *stream.Buffer) (Message, error) {
	d := &ShipMotion{}
	d.TimeStamp = r.ReadUint32LE()
	d.MainHeavePeriod = r.ReadFloat32LE()
	for i := range d.ShipMotion {
		d.ShipMotion[i] = r.ReadFloat32LE()
	}
	for i := range d.ShipAccel {
		d.ShipAccel[i] = r.ReadFloat32LE()
	}

	if r.Space() >= 14 {
		for i := range d.ShipVel {
			d.ShipVel[i] = r.ReadFloat32LE()
		}
		d.Status = r.ReadUint16LE()
	} else {
		d.ShipVel = [3]float32{0, 0, 0}
		d.Status = 0
	}

	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindShipMotion, ShipMotion: d}, nil
}

func encodeShipMotion(m Message) []byte {
	d := m.ShipMotion
	w := stream.NewWriter(42)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteFloat32LE(d.MainHeavePeriod)
	for _, v := range d.ShipMotion {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.ShipAccel {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.ShipVel {
		w.WriteFloat32LE(v)
	}
	w.WriteUint16LE(d.Status)
	return w.Bytes()
}
