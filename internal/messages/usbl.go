package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Usbl is an ultra-short-baseline acoustic positioning fix.
type Usbl struct {
	TimeStamp         uint32
	Status            uint16
	Latitude          float64
	Longitude         float64
	Depth             float32
	LatitudeAccuracy  float32
	LongitudeAccuracy float32
	DepthAccuracy     float32
}

func decodeUsbl(r *stream.Buffer) (Message, error) {
	d := &Usbl{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	d.Latitude = r.ReadFloat64LE()
	d.Longitude = r.ReadFloat64LE()
	d.Depth = r.ReadFloat32LE()
	d.LatitudeAccuracy = r.ReadFloat32LE()
	d.LongitudeAccuracy = r.ReadFloat32LE()
	d.DepthAccuracy = r.ReadFloat32LE()
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindUsbl, Usbl: d}, nil
}

func encodeUsbl(m Message) []byte {
	d := m.Usbl
	w := stream.NewWriter(34)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	w.WriteFloat64LE(d.Latitude)
	w.WriteFloat64LE(d.Longitude)
	w.WriteFloat32LE(d.Depth)
	w.WriteFloat32LE(d.LatitudeAccuracy)
	w.WriteFloat32LE(d.LongitudeAccuracy)
	w.WriteFloat32LE(d.DepthAccuracy)
	return w.Bytes()
}
