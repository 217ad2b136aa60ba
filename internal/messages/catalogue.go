// Package messages is the catalogue of per-(class, id) telemetry payload
// encoders and decoders. Each recognised message decodes into one variant
// of Message, a tagged union over every message kind the catalogue knows.
package messages

import "github.com/sbgstream/sbgstream/internal/stream"

// Message class identifiers.
const (
	ClassLog     uint8 = 0 // periodic telemetry logs
	ClassLogFast uint8 = 1 // high-rate logs (fast IMU)
)

// Message ids within ClassLog.
const (
	IDStatus uint16 = iota + 1
	IDUTCTime
	IDImuData
	IDImuShort
	IDMag
	IDMagCalib
	IDShipMotion
	IDOdoVel
	IDGPS1Vel
	IDGPS1Pos
	IDGPS1Hdt
	IDGPS1Raw
	IDGPS1Sat
	IDGPS2Vel
	IDGPS2Pos
	IDGPS2Hdt
	IDGPS2Raw
	IDGPS2Sat
	IDRtcmRaw
	IDDvlBottomTrack
	IDDvlWaterTrack
	IDUsbl
	IDEventA
	IDEventB
	IDEventC
	IDEventD
	IDEventE
	IDEventOutA
	IDEventOutB
	IDDiag
	IDPtp
	IDSessionInfo
)

// Message ids within ClassLogFast.
const (
	IDFastImuData uint16 = 1
)

// Kind identifies which variant of Message is populated.
type Kind int

const (
	KindUnknown Kind = iota
	KindStatus
	KindUTCTime
	KindImuData
	KindImuShort
	KindFastImuData
	KindMag
	KindMagCalib
	KindShipMotion
	KindOdometer
	KindGPSVel
	KindGPSPos
	KindGPSHdt
	KindGPSRaw
	KindSatellites
	KindRtcmRaw
	KindDvl
	KindUsbl
	KindEvent
	KindDiag
	KindPtp
	KindSessionInfo

	numKinds
)

var kindNames = [numKinds]string{
	KindUnknown:     "unknown",
	KindStatus:      "status",
	KindUTCTime:     "utc_time",
	KindImuData:     "imu_data",
	KindImuShort:    "imu_short",
	KindFastImuData: "fast_imu_data",
	KindMag:         "mag",
	KindMagCalib:    "mag_calib",
	KindShipMotion:  "ship_motion",
	KindOdometer:    "odometer",
	KindGPSVel:      "gps_vel",
	KindGPSPos:      "gps_pos",
	KindGPSHdt:      "gps_hdt",
	KindGPSRaw:      "gps_raw",
	KindSatellites:  "satellites",
	KindRtcmRaw:     "rtcm_raw",
	KindDvl:         "dvl",
	KindUsbl:        "usbl",
	KindEvent:       "event",
	KindDiag:        "diag",
	KindPtp:         "ptp",
	KindSessionInfo: "session_info",
}

// String returns the lower_snake_case name of k, or "unknown" if k falls
// outside the known range.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Receiver distinguishes GPS1 from GPS2 for the aliased GPS message kinds.
type Receiver int

const (
	ReceiverPrimary Receiver = iota
	ReceiverSecondary
)

// EventChannel distinguishes the seven aliased event-marker ids.
type EventChannel int

const (
	EventA EventChannel = iota
	EventB
	EventC
	EventD
	EventE
	EventOutA
	EventOutB
)

// DvlSource distinguishes the two aliased DVL ids that share one decoder.
type DvlSource int

const (
	DvlBottomTrack DvlSource = iota
	DvlWaterTrack
)

// Message is a tagged union over every catalogued payload. Exactly one of
// the pointer fields is non-nil, matching Kind.
type Message struct {
	Kind Kind

	Status      *Status
	UTCTime     *UTCTime
	ImuData     *ImuData
	ImuShort    *ImuShort
	FastImuData *FastImuData
	Mag         *Mag
	MagCalib    *MagCalib
	ShipMotion  *ShipMotion
	Odometer    *Odometer
	GPSVel      *GPSVel
	GPSPos      *GPSPos
	GPSHdt      *GPSHdt
	GPSRaw      *RawData
	Satellites  *SatelliteGroup
	RtcmRaw     *RawData
	Dvl         *Dvl
	Usbl        *Usbl
	Event       *Event
	Diag        *Diag
	Ptp         *PtpStatus
	SessionInfo *SessionInfo

	// Receiver/EventChannel/DvlSource disambiguate aliased ids; zero value
	// (ReceiverPrimary/EventA/DvlBottomTrack) for kinds where it is unused.
	Receiver     Receiver
	EventChannel EventChannel
	DvlSource    DvlSource
}

type decodeFunc func(r *stream.Buffer) (Message, error)
type encodeFunc func(m Message) []byte

type catalogueEntry struct {
	decode decodeFunc
	encode encodeFunc
}

var catalogue = map[uint16]catalogueEntry{}
var catalogueFast = map[uint16]catalogueEntry{}

func register(class uint8, id uint16, e catalogueEntry) {
	switch class {
	case ClassLog:
		catalogue[id] = e
	case ClassLogFast:
		catalogueFast[id] = e
	}
}

// Lookup returns the decode/encode pair registered for (class, id) and
// whether one exists.
func Lookup(class uint8, id uint16) (decode decodeFunc, encode encodeFunc, ok bool) {
	var tbl map[uint16]catalogueEntry
	switch class {
	case ClassLog:
		tbl = catalogue
	case ClassLogFast:
		tbl = catalogueFast
	default:
		return nil, nil, false
	}
	e, ok := tbl[id]
	if !ok {
		return nil, nil, false
	}
	return e.decode, e.encode, true
}

func init() {
	register(ClassLog, IDStatus, catalogueEntry{decodeStatus, encodeStatus})
	register(ClassLog, IDUTCTime, catalogueEntry{decodeUTCTime, encodeUTCTime})
	register(ClassLog, IDImuData, catalogueEntry{decodeImuData, encodeImuData})
	register(ClassLog, IDImuShort, catalogueEntry{decodeImuShort, encodeImuShort})
	register(ClassLog, IDMag, catalogueEntry{decodeMag, encodeMag})
	register(ClassLog, IDMagCalib, catalogueEntry{decodeMagCalib, encodeMagCalib})
	register(ClassLog, IDShipMotion, catalogueEntry{decodeShipMotion, encodeShipMotion})
	register(ClassLog, IDOdoVel, catalogueEntry{decodeOdometer, encodeOdometer})

	register(ClassLog, IDGPS1Vel, catalogueEntry{decodeGPSVelPrimary, encodeGPSVel})
	register(ClassLog, IDGPS2Vel, catalogueEntry{decodeGPSVelSecondary, encodeGPSVel})
	register(ClassLog, IDGPS1Pos, catalogueEntry{decodeGPSPosPrimary, encodeGPSPos})
	register(ClassLog, IDGPS2Pos, catalogueEntry{decodeGPSPosSecondary, encodeGPSPos})
	register(ClassLog, IDGPS1Hdt, catalogueEntry{decodeGPSHdtPrimary, encodeGPSHdt})
	register(ClassLog, IDGPS2Hdt, catalogueEntry{decodeGPSHdtSecondary, encodeGPSHdt})
	register(ClassLog, IDGPS1Raw, catalogueEntry{decodeGPSRawPrimary, encodeGPSRaw})
	register(ClassLog, IDGPS2Raw, catalogueEntry{decodeGPSRawSecondary, encodeGPSRaw})
	register(ClassLog, IDGPS1Sat, catalogueEntry{decodeSatellitesPrimary, encodeSatellites})
	register(ClassLog, IDGPS2Sat, catalogueEntry{decodeSatellitesSecondary, encodeSatellites})
	register(ClassLog, IDRtcmRaw, catalogueEntry{decodeRtcmRaw, encodeRtcmRaw})

	register(ClassLog, IDDvlBottomTrack, catalogueEntry{decodeDvlBottomTrack, encodeDvl})
	register(ClassLog, IDDvlWaterTrack, catalogueEntry{decodeDvlWaterTrack, encodeDvl})
	register(ClassLog, IDUsbl, catalogueEntry{decodeUsbl, encodeUsbl})

	register(ClassLog, IDEventA, catalogueEntry{decodeEvent(EventA), encodeEvent})
	register(ClassLog, IDEventB, catalogueEntry{decodeEvent(EventB), encodeEvent})
	register(ClassLog, IDEventC, catalogueEntry{decodeEvent(EventC), encodeEvent})
	register(ClassLog, IDEventD, catalogueEntry{decodeEvent(EventD), encodeEvent})
	register(ClassLog, IDEventE, catalogueEntry{decodeEvent(EventE), encodeEvent})
	register(ClassLog, IDEventOutA, catalogueEntry{decodeEvent(EventOutA), encodeEvent})
	register(ClassLog, IDEventOutB, catalogueEntry{decodeEvent(EventOutB), encodeEvent})

	register(ClassLog, IDDiag, catalogueEntry{decodeDiag, encodeDiag})
	register(ClassLog, IDPtp, catalogueEntry{decodePtp, encodePtp})

	register(ClassLogFast, IDFastImuData, catalogueEntry{decodeFastImuData, encodeFastImuData})
}
