// Package transport supplies the raw byte sources the frame reassembler
// reads from (serial, UDP, file replay) and a fan-in asynchronous writer
// for outbound command bytes.
package transport

import (
	"net"
	"os"
	"time"

	"github.com/tarm/serial"
)

// Source is anything the reassembler can read a telemetry byte stream
// from. Write reaches the device only for serial sources: the UDP source
// is a listening socket with no connected peer, so its Write returns an
// error, and file replay sources reject writes as well.
type Source interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// OpenSerial opens a serial port at the given baud rate with a read
// timeout, used when ingesting from a directly wired device.
func OpenSerial(name string, baud int, readTimeout time.Duration) (Source, error) {
	cfg := &serial.Config{Name: name, Baud: baud, ReadTimeout: readTimeout}
	return serial.OpenPort(cfg)
}

// OpenUDP opens a UDP socket bound to addr, used when ingesting from a
// device that streams telemetry over the network.
func OpenUDP(addr string) (Source, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.ListenUDP("udp", udpAddr)
}

// fileSource replays a captured byte stream from disk. Writes are rejected
// since there is no live device to command.
type fileSource struct {
	f *os.File
}

func (s *fileSource) Read(p []byte) (int, error) { return s.f.Read(p) }
func (s *fileSource) Write([]byte) (int, error)  { return 0, os.ErrInvalid }
func (s *fileSource) Close() error               { return s.f.Close() }

// OpenFile opens a captured raw frame stream for offline replay.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileSource{f: f}, nil
}
