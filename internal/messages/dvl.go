package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Dvl is a Doppler velocity log reading. Both the bottom-track and
// water-track message ids alias this schema; DvlSource on the containing
// Message distinguishes them.
type Dvl struct {
	TimeStamp       uint32
	Status          uint16
	Velocity        [3]float32
	VelocityQuality [3]float32
}

func decodeDvl(r *stream.Buffer) (*Dvl, error) {
	d := &Dvl{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	for i := range d.Velocity {
		d.Velocity[i] = r.ReadFloat32LE()
	}
	for i := range d.VelocityQuality {
		d.VelocityQuality[i] = r.ReadFloat32LE()
	}
	if code := r.LastError(); !code.OK() {
		return nil, code
	}
	return d, nil
}

func decodeDvlBottomTrack(r *stream.Buffer) (Message, error) {
	d, err := decodeDvl(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindDvl, Dvl: d, DvlSource: DvlBottomTrack}, nil
}

func decodeDvlWaterTrack(r *stream.Buffer) (Message, error) {
	d, err := decodeDvl(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindDvl, Dvl: d, DvlSource: DvlWaterTrack}, nil
}

func encodeDvl(m Message) []byte {
	d := m.Dvl
	w := stream.NewWriter(30)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	for _, v := range d.Velocity {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.VelocityQuality {
		w.WriteFloat32LE(v)
	}
	return w.Bytes()
}
