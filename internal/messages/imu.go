package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// ImuData is the full-precision inertial measurement log.
type ImuData struct {
	TimeStamp      uint32
	Status         uint16
	Accelerometers [3]float32
	Gyroscopes     [3]float32
	Temperature    float32
	DeltaVelocity  [3]float32
	DeltaAngle     [3]float32
}

func decodeImuData(r *stream.Buffer) (Message, error) {
	d := &ImuData{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	for i := range d.Accelerometers {
		d.Accelerometers[i] = r.ReadFloat32LE()
	}
	for i := range d.Gyroscopes {
		d.Gyroscopes[i] = r.ReadFloat32LE()
	}
	d.Temperature = r.ReadFloat32LE()
	for i := range d.DeltaVelocity {
		d.DeltaVelocity[i] = r.ReadFloat32LE()
	}
	for i := range d.DeltaAngle {
		d.DeltaAngle[i] = r.ReadFloat32LE()
	}
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindImuData, ImuData: d}, nil
}

func encodeImuData(m Message) []byte {
	d := m.ImuData
	w := stream.NewWriter(50)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	for _, v := range d.Accelerometers {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.Gyroscopes {
		w.WriteFloat32LE(v)
	}
	w.WriteFloat32LE(d.Temperature)
	for _, v := range d.DeltaVelocity {
		w.WriteFloat32LE(v)
	}
	for _, v := range d.DeltaAngle {
		w.WriteFloat32LE(v)
	}
	return w.Bytes()
}

// ImuShort is the bandwidth-reduced fixed-point inertial measurement log.
// Delta angle is packed at 1/2^26 rad, delta velocity at 1/2^20 m/s, and
// temperature at 1/256 degC.
type ImuShort struct {
	TimeStamp     uint32
	Status        uint16
	DeltaVelocity [3]float32
	DeltaAngle    [3]float32
	Temperature   float32
}

const (
	imuShortAngleScale = 1.0 / 67108864.0 // 1 / 2^26
	imuShortVelScale   = 1.0 / 1048576.0  // 1 / 2^20
	imuShortTempScale  = 1.0 / 256.0
)

func decodeImuShort(r *stream.Buffer) (Message, error) {
	d := &ImuShort{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	for i := range d.DeltaVelocity {
		d.DeltaVelocity[i] = float32(r.ReadInt32LE()) * imuShortVelScale
	}
	for i := range d.DeltaAngle {
		d.DeltaAngle[i] = float32(r.ReadInt32LE()) * imuShortAngleScale
	}
	d.Temperature = float32(r.ReadInt16LE()) * imuShortTempScale
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindImuShort, ImuShort: d}, nil
}

func encodeImuShort(m Message) []byte {
	d := m.ImuShort
	w := stream.NewWriter(28)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	for _, v := range d.DeltaVelocity {
		w.WriteInt32LE(int32(v / imuShortVelScale))
	}
	for _, v := range d.DeltaAngle {
		w.WriteInt32LE(int32(v / imuShortAngleScale))
	}
	w.WriteInt16LE(int16(d.Temperature / imuShortTempScale))
	return w.Bytes()
}

// FastImuData is the high-rate, reduced-precision inertial measurement log
// delivered in ClassLogFast. Accelerometers are packed at 0.01 m/s^2 per
// unit, gyroscopes at 0.001 rad/s per unit.
type FastImuData struct {
	TimeStamp      uint32
	Status         uint16
	Accelerometers [3]float32
	Gyroscopes     [3]float32
}

const (
	fastImuAccelScale = 0.01
	fastImuGyroScale  = 0.001
)

func decodeFastImuData(r *stream.Buffer) (Message, error) {
	d := &FastImuData{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	for i := range d.Accelerometers {
		d.Accelerometers[i] = float32(r.ReadInt16LE()) * fastImuAccelScale
	}
	for i := range d.Gyroscopes {
		d.Gyroscopes[i] = float32(r.ReadInt16LE()) * fastImuGyroScale
	}
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindFastImuData, FastImuData: d}, nil
}

func encodeFastImuData(m Message) []byte {
	d := m.FastImuData
	w := stream.NewWriter(18)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	for _, v := range d.Accelerometers {
		w.WriteInt16LE(int16(v / fastImuAccelScale))
	}
	for _, v := range d.Gyroscopes {
		w.WriteInt16LE(int16(v / fastImuGyroScale))
	}
	return w.Bytes()
}
