// Package protocol reassembles a byte stream into validated frames and
// encodes frames back to bytes. A frame is sync-delimited, carries a
// (class, id) message identity and a payload of at most MaxPayloadSize
// bytes, and is protected by a CRC-16 covering the header and payload.
package protocol

import (
	"bytes"
	"encoding/binary"

	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/metrics"
)

const (
	sync0 = 0xFF
	sync1 = 0x5A
	etx   = 0x33

	// MaxPayloadSize is the largest payload a frame may carry.
	MaxPayloadSize = 4086

	// headerSize is class(1) + id(2) + len(2).
	headerSize = 5
	// trailerSize is crc(2) + etx(1).
	trailerSize = 3
	minFrameLen = headerSize + trailerSize
)

// Frame is one validated protocol unit.
type Frame struct {
	Class   uint8
	ID      uint16
	Payload []byte
}

// Encode serializes f into a complete wire frame: sync, header, payload,
// CRC, and ETX.
func Encode(f Frame) []byte {
	out := make([]byte, 0, 2+headerSize+len(f.Payload)+trailerSize)
	out = append(out, sync0, sync1, f.Class)
	out = binary.LittleEndian.AppendUint16(out, f.ID)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(f.Payload)))
	crcStart := len(out) - headerSize
	out = append(out, f.Payload...)
	crc := crc16(out[crcStart:])
	out = binary.LittleEndian.AppendUint16(out, crc)
	out = append(out, etx)
	return out
}

// Reassembler scans an accumulating byte stream for frames, resynchronizing
// one byte at a time past the last detected sync whenever a candidate frame
// fails validation.
type Reassembler struct {
	buf bytes.Buffer
}

// NewReassembler returns an empty Reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Write appends newly-received bytes to the reassembler's internal buffer.
func (r *Reassembler) Write(p []byte) {
	r.buf.Write(p)
}

// Decode drains every complete, valid frame currently buffered, invoking
// onFrame for each one in wire order. It always returns errcode.NotReady:
// it stops only when more bytes are needed (the normal steady state),
// which includes the case where the buffer is left empty.
func (r *Reassembler) Decode(onFrame func(Frame)) errcode.Code {
	header := []byte{sync0, sync1}

	for {
		data := r.buf.Bytes()
		if len(data) < 2 {
			return errcode.NotReady
		}

		i := bytes.Index(data, header)
		if i < 0 {
			// Keep the last byte in case it is the first half of a sync
			// that straddles this call's boundary.
			if r.buf.Len() > 1 {
				last := data[len(data)-1]
				r.buf.Reset()
				r.buf.WriteByte(last)
			}
			return errcode.NotReady
		}
		if i > 0 {
			r.buf.Next(i)
			continue
		}

		// Sync located at offset 0; need the full header to read length.
		if len(data) < 2+headerSize {
			return errcode.NotReady
		}

		length := int(binary.LittleEndian.Uint16(data[5:7]))
		if length > MaxPayloadSize {
			metrics.IncFrameResync()
			r.buf.Next(1)
			continue
		}

		total := 2 + headerSize + length + trailerSize
		if len(data) < total {
			return errcode.NotReady
		}

		payload := data[2+headerSize : 2+headerSize+length]
		crcGot := binary.LittleEndian.Uint16(data[2+headerSize+length : total-1])
		etxGot := data[total-1]

		if etxGot != etx {
			metrics.IncFrameResync()
			r.buf.Next(1)
			continue
		}

		crcWant := crc16(data[2 : 2+headerSize+length])
		if crcGot != crcWant {
			metrics.IncCRCFailure()
			r.buf.Next(1)
			continue
		}

		f := Frame{
			Class:   data[2],
			ID:      binary.LittleEndian.Uint16(data[3:5]),
			Payload: append([]byte(nil), payload...),
		}
		metrics.IncFramesDecoded()
		onFrame(f)
		r.buf.Next(total)
	}
}
