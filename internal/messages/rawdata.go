package messages

import (
	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/protocol"
	"github.com/sbgstream/sbgstream/internal/stream"
)

// RawData carries a vendor-format payload (raw GNSS receiver data or raw
// RTCM corrections) copied verbatim, up to the frame's maximum payload
// size.
type RawData struct {
	Buffer []byte
}

// decodeRawData copies every remaining byte in r. The caller has already
// sized r to the frame's payload, so "remaining" is the whole payload.
func decodeRawData(r *stream.Buffer) (*RawData, error) {
	size := r.Space()
	if size > protocol.MaxPayloadSize {
		return nil, errcode.BufferOverflow
	}
	buf := r.ReadBytes(size)
	if code := r.LastError(); !code.OK() {
		return nil, code
	}
	return &RawData{Buffer: append([]byte(nil), buf...)}, nil
}

func encodeRawData(d *RawData) []byte {
	w := stream.NewWriter(len(d.Buffer))
	w.WriteBytes(d.Buffer)
	return w.Bytes()
}

func decodeGPSRawPrimary(r *stream.Buffer) (Message, error) {
	d, err := decodeRawData(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSRaw, GPSRaw: d, Receiver: ReceiverPrimary}, nil
}

func decodeGPSRawSecondary(r *stream.Buffer) (Message, error) {
	d, err := decodeRawData(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindGPSRaw, GPSRaw: d, Receiver: ReceiverSecondary}, nil
}

func encodeGPSRaw(m Message) []byte {
	return encodeRawData(m.GPSRaw)
}

func decodeRtcmRaw(r *stream.Buffer) (Message, error) {
	d, err := decodeRawData(r)
	if err != nil {
		return Message{}, err
	}
	return Message{Kind: KindRtcmRaw, RtcmRaw: d}, nil
}

func encodeRtcmRaw(m Message) []byte {
	return encodeRawData(m.RtcmRaw)
}
