package messages

import (
	"fmt"

	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/stream"
)

// PtpState is the device's PTP (IEEE 1588) port state.
type PtpState uint8

const (
	PtpDisabled PtpState = iota
	PtpFaulty
	PtpMaster
	PtpPassive
)

func (s PtpState) valid() bool { return s <= PtpPassive }

// PtpTimeScale identifies the time scale PTP fields are expressed in.
type PtpTimeScale uint8

const (
	PtpTimeScaleTAI PtpTimeScale = iota
	PtpTimeScaleUTC
	PtpTimeScaleGPS
)

func (s PtpTimeScale) valid() bool { return s <= PtpTimeScaleGPS }

// PtpClock bundles one clock's (local or master) quality attributes.
type PtpClock struct {
	Identity     uint64
	Priority1    uint8
	Priority2    uint8
	Class        uint8
	Accuracy     uint8
	Log2Variance uint16
	TimeSource   uint8
}

// PtpStatus is the PTP synchronization status log.
type PtpStatus struct {
	TimeStamp       uint32
	State           PtpState
	TimeScale       PtpTimeScale
	TimeScaleOffset float64
	Local           PtpClock
	Master          PtpClock

	// MasterIPAddress is stored exactly as read off the wire (a raw
	// little-endian uint32), not reinterpreted as an IPv4 address here;
	// see DESIGN.md Open Question 1 and MasterIPString below.
	MasterIPAddress uint32

	MeanPathDelay         float32
	MeanPathDelayStdDev   float32
	ClockOffset           float64
	ClockOffsetStdDev     float32
	ClockFreqOffset       float32
	ClockFreqOffsetStdDev float32
}

// MasterIPString formats MasterIPAddress as A.B.C.D, treating the stored
// wire value's byte pattern as big-endian per sbgIpAddress's documented
// on-the-wire convention.
func (p *PtpStatus) MasterIPString() string {
	v := p.MasterIPAddress
	return fmt.Sprintf("%d.%d.%d.%d", byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func decodePtpClock(r *stream.Buffer) PtpClock {
	var c PtpClock
	c.Identity = r.ReadUint64LE()
	c.Priority1 = r.ReadUint8()
	c.Priority2 = r.ReadUint8()
	c.Class = r.ReadUint8()
	c.Accuracy = r.ReadUint8()
	c.Log2Variance = r.ReadUint16LE()
	c.TimeSource = r.ReadUint8()
	return c
}

func encodePtpClock(w *stream.Buffer, c PtpClock) {
	w.WriteUint64LE(c.Identity)
	w.WriteUint8(c.Priority1)
	w.WriteUint8(c.Priority2)
	w.WriteUint8(c.Class)
	w.WriteUint8(c.Accuracy)
	w.WriteUint16LE(c.Log2Variance)
	w.WriteUint8(c.TimeSource)
}

func decodePtp(r *stream.Buffer) (Message, error) {
	d := &PtpStatus{}
	d.TimeStamp = r.ReadUint32LE()
	state := r.ReadUint8()
	timeScale := r.ReadUint8()
	d.TimeScaleOffset = r.ReadFloat64LE()
	d.Local = decodePtpClock(r)
	d.Master = decodePtpClock(r)
	d.MasterIPAddress = r.ReadUint32LE()
	d.MeanPathDelay = r.ReadFloat32LE()
	d.MeanPathDelayStdDev = r.ReadFloat32LE()
	d.ClockOffset = r.ReadFloat64LE()
	d.ClockOffsetStdDev = r.ReadFloat32LE()
	d.ClockFreqOffset = r.ReadFloat32LE()
	d.ClockFreqOffsetStdDev = r.ReadFloat32LE()

	// Raw-read errors take priority over enum validation, matching the
	// reference decoder's error-check ordering.
	if code := r.LastError(); !code.OK() {
		return Message{}, code
	}

	d.State = PtpState(state)
	d.TimeScale = PtpTimeScale(timeScale)
	if !d.State.valid() || !d.TimeScale.valid() {
		return Message{}, errcode.InvalidParameter
	}

	return Message{Kind: KindPtp, Ptp: d}, nil
}

func encodePtp(m Message) []byte {
	d := m.Ptp
	w := stream.NewWriter(80)
	w.WriteUint32LE(d.TimeStamp)
	w.WriteUint8(uint8(d.State))
	w.WriteUint8(uint8(d.TimeScale))
	w.WriteFloat64LE(d.TimeScaleOffset)
	encodePtpClock(w, d.Local)
	encodePtpClock(w, d.Master)
	w.WriteUint32LE(d.MasterIPAddress)
	w.WriteFloat32LE(d.MeanPathDelay)
	w.WriteFloat32LE(d.MeanPathDelayStdDev)
	w.WriteFloat64LE(d.ClockOffset)
	w.WriteFloat32LE(d.ClockOffsetStdDev)
	w.WriteFloat32LE(d.ClockFreqOffset)
	w.WriteFloat32LE(d.ClockFreqOffsetStdDev)
	return w.Bytes()
}
