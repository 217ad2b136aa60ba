package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// GPSVel is a GNSS velocity solution. No version-tolerant tail fields.
type GPSVel struct {
	TimeStamp   uint32
	Status      uint32
	TimeOfWeek  uint32
	Velocity    [3]float32
	VelocityAcc [3]float32
	Course      float32
	CourseAcc   float32
}

func decodeGPSVel(r *stream.Buffer) (*GPSVel, error) {
	d := &GPSVel{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint32LE()
	d.TimeOfWeek = r.ReadUint32LE()
	for i := range d.Velocity {
		d.Velocity[i] = r.ReadFloat32LE()
	}
	for i := range d.VelocityAcc {
		d.VelocityAcc[i] = r.ReadFloat32LE()
	}
	d.Course = r.ReadFloat32LE()
	d.CourseAcc = r.ReadFloat32LE()
	if code := r.LastError(); !code.OK() {
		return nil, code
	}
	return d, nil
}

func decodeGPSVelPrimary(r *stream.Buffer) (Message, error) {
	d, err := decodeGPSVel(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSVel, GPSVel: d, Receiver: ReceiverPrimary}, nil
}

func decodeGPSVelSecondary(r *stream.Buffer) (Message, error) {
	d, err := decodeGPSVel(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSVel, GPSVel: d, Receiver: ReceiverSecondary}, nil
}

func encodeGPSVel(m Message) []byte {
	d := m.GPSVel
	w := stream.NewWriter(44)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint32LE(d.Status)
	w.WriteUint32LE(d.TimeOfWeek)
	for _, v := range d.Velocity {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.VelocityAcc {
		w.WriteFloat32LE(v)
	}
	w.WriteFloat32LE(d.Course)
	w.WriteFloat32LE(d.CourseAcc)
	return w.Bytes()
}

// GPSPos is a GNSS position solution. numSvUsed/baseStationId/
// differentialAge were added in a later protocol version; absent on older
// payloads, they default per decodeGPSPos below.
type GPSPos struct {
	TimeStamp         uint32
	Status            uint32
	TimeOfWeek        uint32
	Latitude          float64
	Longitude         float64
	Altitude          float64
	Undulation        float32
	LatitudeAccuracy  float32
	LongitudeAccuracy float32
	AltitudeAccuracy  float32
	NumSvUsed         uint8
	BaseStationID     uint16
	DifferentialAge   uint16
}

func decodeGPSPos(r *stream.Buffer) (*GPSPos, error) {
	d := &GPSPos{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint32LE()
	d.TimeOfWeek = r.ReadUint32LE()
	d.Latitude = r.ReadFloat64LE()
	d.Longitude = r.ReadFloat64LE()
	d.Altitude = r.ReadFloat64LE()
	d.Undulation = r.ReadFloat32LE()
	d.LatitudeAccuracy = r.ReadFloat32LE()
	d.LongitudeAccuracy = r.ReadFloat32LE()
	d.AltitudeAccuracy = r.ReadFloat32LE()

	if r.Space() >= 5 {
		d.NumSvUsed = r.ReadUint8()
		d.BaseStationID = r.ReadUint16LE()
		d.DifferentialAge = r.ReadUint16LE()
	} else {
		d.NumSvUsed = 0
		d.BaseStationID = 0xFFFF
		d.DifferentialAge = 0xFFFF
	}

	if code := r.LastError(); !code.OK() {
		return nil, code
	}
	return d, nil
}

func decodeGPSPosPrimary(r *stream.Buffer) (Message, error) {
	d, err := decodeGPSPos(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSPos, GPSPos: d, Receiver: ReceiverPrimary}, nil
}

func decodeGPSPosSecondary(r *stream.Buffer) (Message, error) {
	d, err := decodeGPSPos(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSPos, GPSPos: d, Receiver: ReceiverSecondary}, nil
}

func encodeGPSPos(m Message) []byte {
	d := m.GPSPos
	w := stream.NewWriter(54)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint32LE(d.Status)
	w.WriteUint32LE(d.TimeOfWeek)
	w.WriteFloat64LE(d.Latitude)
	w.WriteFloat64LE(d.Longitude)
	w.WriteFloat64LE(d.Altitude)
	w.WriteFloat32LE(d.Undulation)
	w.WriteFloat32LE(d.LatitudeAccuracy)
	w.WriteFloat32LE(d.LongitudeAccuracy)
	w.WriteFloat32LE(d.AltitudeAccuracy)
	w.WriteUint8(d.NumSvUsed)
	w.WriteUint16LE(d.BaseStationID)
	w.WriteUint16LE(d.DifferentialAge)
	return w.Bytes()
}

// GPSHdt is a GNSS true-heading solution. Baseline was added in a later
// protocol version; absent on older payloads, it defaults to 0.
type GPSHdt struct {
	TimeStamp       uint32
	Status          uint16
	TimeOfWeek      uint32
	Heading         float32
	HeadingAccuracy float32
	Pitch           float32
	PitchAccuracy   float32
	Baseline        float32
}

func decodeGPSHdt(r *stream.Buffer) (*GPSHdt, error) {
	d := &GPSHdt{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	d.TimeOfWeek = r.ReadUint32LE()
	d.Heading = r.ReadFloat32LE()
	d.HeadingAccuracy = r.ReadFloat32LE()
	d.Pitch = r.ReadFloat32LE()
	d.PitchAccuracy = r.ReadFloat32LE()

	if r.Space() > 0 {
		d.Baseline = r.ReadFloat32LE()
	} else {
		d.Baseline = 0
	}

	if code := r.LastError(); !code.OK() {
		return nil, code
	}
	return d, nil
}

func decodeGPSHdtPrimary(r *stream.Buffer) (Message, error) {
	d, err := decodeGPSHdt(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSHdt, GPSHdt: d, Receiver: ReceiverPrimary}, nil
}

func decodeGPSHdtSecondary(r *stream.Buffer) (Message, error) {
	d, err := decodeGPSHdt(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSHdt, GPSHdt: d, Receiver: ReceiverSecondary}, nil
}

func encodeGPSHdt(m Message) []byte {
	d := m.GPSHdt
	w := stream.NewWriter(28)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	w.WriteUint32LE(d.TimeOfWeek)
	w.WriteFloat32LE(d.Heading)
	w.WriteFloat32LE(d.HeadingAccuracy)
	w.WriteFloat32LE(d.Pitch)
	w.WriteFloat32LE(d.PitchAccuracy)
	w.WriteFloat32LE(d.Baseline)
	return w.Bytes()
}
