package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Mag is the magnetometer/accelerometer log.
type Mag struct {
	TimeStamp      uint32
	Status         uint16
	Magnetometers  [3]float32
	Accelerometers [3]float32
}

func decodeMag(r *stream.Buffer) (Message, error) {
	d := &Mag{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	for i := range d.Magnetometers {
		d.Magnetometers[i] = r.ReadFloat32LE()
	}
	for i := range d.Accelerometers {
		d.Accelerometers[i] = r.ReadFloat32LE()
	}
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindMag, Mag: d}, nil
}

func encodeMag(m Message) []byte {
	d := m.Mag
	w := stream.NewWriter(30)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	for _, v := range d.Magnetometers {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.Accelerometers {
		w.WriteFloat32LE(v)
	}
	return w.Bytes()
}

// MagCalibDataSize is the fixed size of the raw calibration buffer: a 3x3
// compensation matrix plus a 3-element offset vector, each in double
// precision (12 * 8 bytes). See DESIGN.md Open Question 6.
const MagCalibDataSize = 96

// MagCalib carries a raw magnetometer calibration (soft/hard iron
// compensation) buffer, opaque to the core.
type MagCalib struct {
	TimeStamp uint32
	Reserved  uint16
	MagData   [MagCalibDataSize]byte
}

func decodeMagCalib(r *stream.Buffer) (Message, error) {
	d := &MagCalib{}
	d.TimeStamp = r.ReadUint32LE()
	d.Reserved = r.ReadUint16LE()
	buf := r.ReadBytes(MagCalibDataSize)
	copy(d.MagData[:], buf)
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindMagCalib, MagCalib: d}, nil
}

func encodeMagCalib(m Message) []byte {
	d := m.MagCalib
	w := stream.NewWriter(6 + MagCalibDataSize)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Reserved)
	w.WriteBytes(d.MagData[:])
	return w.Bytes()
}
