package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Odometer is a wheel/external odometer velocity reading.
type Odometer struct {
	TimeStamp uint32
	Status    uint16
	Velocity  float32
}

func decodeOdometer(r *stream.Buffer) (Message, error) {
	d := &Odometer{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	d.Velocity = r.ReadFloat32LE()
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindOdometer, Odometer: d}, nil
}

func encodeOdometer(m Message) []byte {
	d := m.Odometer
	w := stream.NewWriter(10)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	w.WriteFloat32LE(d.Velocity)
	return w.Bytes()
}
