package messages

import (
	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/stream"
)

// Hard limits on the satellites-in-view composite.
const (
	MaxSatellites = 64
	MaxSignals    = 8
)

// TrackingStatus is the per-satellite/per-signal tracking state, packed in
// the low 3 bits of each flags field.
type TrackingStatus uint8

const (
	TrackingUnknown TrackingStatus = iota
	TrackingSearching
	TrackingUnknownLock
	TrackingNotUsed
	TrackingRejected
	TrackingUsed
)

func (s TrackingStatus) valid() bool {
	return s <= TrackingUsed
}

// HealthStatus is the per-satellite/per-signal health state, packed in bits
// [3:5) of each flags field.
type HealthStatus uint8

const (
	HealthUnknown HealthStatus = iota
	HealthHealthy
	HealthUnhealthy
)

func (s HealthStatus) valid() bool {
	return s <= HealthUnhealthy
}

// ElevationStatus is the per-satellite elevation trend, packed in bits
// [5:7) of the satellite flags field.
type ElevationStatus uint8

const (
	ElevationUnknown ElevationStatus = iota
	ElevationSetting
	ElevationRising
)

func (s ElevationStatus) valid() bool {
	return s <= ElevationRising
}

// ConstellationID identifies the GNSS constellation a satellite belongs
// to, packed in bits [7:11) of the satellite flags field.
type ConstellationID uint8

const (
	ConstellationUnknown ConstellationID = iota
	ConstellationGPS
	ConstellationGLONASS
	ConstellationGalileo
	ConstellationBeiDou
	ConstellationQZSS
	ConstellationSBAS
)

func (c ConstellationID) valid() bool {
	return c <= ConstellationSBAS
}

const signalSNRValid = 1 << 5

// SignalData is one per-signal tracking record for a satellite.
type SignalData struct {
	ID             uint8
	TrackingStatus TrackingStatus
	HealthStatus   HealthStatus
	SNRValid       bool
	SNR            uint8
}

// SatelliteData is one satellite's tracking record, carrying its signals.
type SatelliteData struct {
	ID              uint8
	Elevation       int8
	Azimuth         uint16
	ConstellationID ConstellationID
	ElevationStatus ElevationStatus
	HealthStatus    HealthStatus
	TrackingStatus  TrackingStatus
	Signals         []SignalData
}

// SatelliteGroup is the satellites-in-view composite: a timestamp and a
// variable-length list of satellite records, each with its own
// variable-length list of signal records.
type SatelliteGroup struct {
	TimeStamp uint32
	Reserved  uint32
	Satellite []SatelliteData
}

func bitField(v uint16, offset, width uint) uint16 {
	mask := uint16(1)<<width - 1
	return (v >> offset) & mask
}

func decodeSignal(r *stream.Buffer) (SignalData, error) {
	var s SignalData
	s.ID = r.ReadUint8()
	flags := r.ReadUint8()
	s.SNR = r.ReadUint8()

	s.TrackingStatus = TrackingStatus(bitField(uint16(flags), 0, 3))
	s.HealthStatus = HealthStatus(bitField(uint16(flags), 3, 2))
	s.SNRValid = flags&signalSNRValid != 0

	if code := r.LastError(); !code.OK() {
		return SignalData{}, code
	}
	if !s.TrackingStatus.valid() {
		return SignalData{}, errcode.InvalidFrame
	}
	if !s.HealthStatus.valid() {
		return SignalData{}, errcode.InvalidFrame
	}
	return s, nil
}

func encodeSignal(w *stream.Buffer, s SignalData) {
	w.WriteUint8(s.ID)
	flags := uint8(s.TrackingStatus) | uint8(s.HealthStatus)<<3
	if s.SNRValid {
		flags |= signalSNRValid
	}
	w.WriteUint8(flags)
	w.WriteUint8(s.SNR)
}

func decodeSatellite(r *stream.Buffer) (SatelliteData, error) {
	var sat SatelliteData
	sat.ID = r.ReadUint8()
	sat.Elevation = r.ReadInt8()
	sat.Azimuth = r.ReadUint16LE()
	flags := r.ReadUint16LE()
	nrSignals := r.ReadUint8()

	if code := r.LastError(); !code.OK() {
		return SatelliteData{}, code
	}
	if nrSignals > MaxSignals {
		return SatelliteData{}, errcode.InvalidFrame
	}

	sat.TrackingStatus = TrackingStatus(bitField(flags, 0, 3))
	sat.HealthStatus = HealthStatus(bitField(flags, 3, 2))
	sat.ElevationStatus = ElevationStatus(bitField(flags, 5, 2))
	sat.ConstellationID = ConstellationID(bitField(flags, 7, 4))

	if !sat.ConstellationID.valid() || !sat.ElevationStatus.valid() ||
		!sat.HealthStatus.valid() || !sat.TrackingStatus.valid() {
		return SatelliteData{}, errcode.InvalidFrame
	}

	sat.Signals = make([]SignalData, 0, nrSignals)
	for i := uint8(0); i < nrSignals; i++ {
		sig, err := decodeSignal(r)
		if err != nil {
			// Partial allocation is simply dropped; Go's GC reclaims it.
			return SatelliteData{}, err
		}
		sat.Signals = append(sat.Signals, sig)
	}
	return sat, nil
}

func encodeSatellite(w *stream.Buffer, sat SatelliteData) {
	w.WriteUint8(sat.ID)
	w.WriteInt8(sat.Elevation)
	w.WriteUint16LE(sat.Azimuth)
	flags := uint16(sat.TrackingStatus) |
		uint16(sat.HealthStatus)<<3 |
		uint16(sat.ElevationStatus)<<5 |
		uint16(sat.ConstellationID)<<7
	w.WriteUint16LE(flags)
	w.WriteUint8(uint8(len(sat.Signals)))
	for _, sig := range sat.Signals {
		encodeSignal(w, sig)
	}
}

func decodeSatellites(receiver Receiver) decodeFunc {
	return func(r *stream.Buffer) (Message, error) {
		g := &SatelliteGroup{}
		g.TimeStamp = r.ReadUint32LE()
		g.Reserved = r.ReadUint32LE()
		nrSatellites := r.ReadUint8()

		if code := r.LastError(); !code.OK() {
			return Message{}, code
		}
		if nrSatellites > MaxSatellites {
			return Message{}, errcode.InvalidFrame
		}

		g.Satellite = make([]SatelliteData, 0, nrSatellites)
		for i := uint8(0); i < nrSatellites; i++ {
			sat, err := decodeSatellite(r)
			if err != nil {
				return Message{}, err
			}
			g.Satellite = append(g.Satellite, sat)
		}

		return Message{Kind: KindSatellites, Satellites: g, Receiver: receiver}, nil
	}
}

var decodeSatellitesPrimary = decodeSatellites(ReceiverPrimary)
var decodeSatellitesSecondary = decodeSatellites(ReceiverSecondary)

func encodeSatellites(m Message) []byte {
	g := m.Satellites
	w := stream.NewWriter(16 + len(g.Satellite)*16)
	w.WriteUint32LE(g.TimeStamp)
	w.WriteUint32LE(g.Reserved)
	w.WriteUint8(uint8(len(g.Satellite)))
	for _, sat := range g.Satellite {
		encodeSatellite(w, sat)
	}
	return w.Bytes()
}
