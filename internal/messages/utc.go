package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// UTCTime is the device's UTC clock log.
type UTCTime struct {
	TimeStamp     uint32
	Status        uint16
	Year          uint16
	Month         int8
	Day           int8
	Hour          int8
	Minute        int8
	Second        int8
	NanoSecond    int32
	GPSTimeOfWeek uint32
}

func decodeUTCTime(r *stream.Buffer) (Message, error) {
	d := &UTCTime{}
	d.TimeStamp = r.ReadUint32LE()
	d.Status = r.ReadUint16LE()
	d.Year = r.ReadUint16LE()
	d.Month = r.ReadInt8()
	d.Day = r.ReadInt8()
	d.Hour = r.ReadInt8()
	d.Minute = r.ReadInt8()
	d.Second = r.ReadInt8()
	d.NanoSecond = r.ReadInt32LE()
	d.GPSTimeOfWeek = r.ReadUint32LE()
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}
	return Message{Kind: KindUTCTime, UTCTime: d}, nil
}

func encodeUTCTime(m Message) []byte {
	d := m.UTCTime
	w := stream.NewWriter(21)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint16LE(d.Status)
	w.WriteUint16LE(d.Year)
	w.WriteInt8(d.Month)
	w.WriteInt8(d.Day)
	w.WriteInt8(d.Hour)
	w.WriteInt8(d.Minute)
	w.WriteInt8(d.Second)
	w.WriteInt32LE(d.NanoSecond)
	w.WriteUint32LE(d.GPSTimeOfWeek)
	return w.Bytes()
}
