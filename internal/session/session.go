// Package session reassembles a multi-page UTF-8 blob (the device's
// session-information string) delivered as a sequence of (pageIndex,
// nrPages, bytes) triples.
package session

import (
	"github.com/sbgstream/sbgstream/internal/errcode"
	"github.com/sbgstream/sbgstream/internal/metrics"
)

// MaxSize is the fixed capacity of the reassembled string, including the
// trailing null terminator slot.
const MaxSize = 4096

// Context holds the reassembly state for one session-information blob. The
// zero value is ready to use.
type Context struct {
	data      [MaxSize]byte
	length    int
	pageIndex uint16
	nrPages   uint16
}

func (c *Context) reset() {
	c.length = 0
	c.pageIndex = 0
	c.nrPages = 0
}

// Process feeds one page into the reassembly state machine. It returns
// errcode.NotReady while more pages are expected, errcode.NoError once
// pageIndex reaches nrPages, or errcode.BufferOverflow if the accumulated
// string would not fit (the context is reset in that case).
func (c *Context) Process(pageIndex, nrPages uint16, data []byte) errcode.Code {
	result := errcode.NotReady

	if c.pageIndex != pageIndex {
		if pageIndex != 0 || c.pageIndex != c.nrPages {
			metrics.IncSessionInfoReset()
		}
		c.reset()
	}

	if pageIndex == 0 {
		c.nrPages = nrPages
	}

	if c.pageIndex == pageIndex {
		newSize := c.length + len(data)

		// Leave room for the trailing null terminator.
		if newSize < len(c.data) {
			copy(c.data[c.length:newSize], data)
			c.data[newSize] = 0

			c.length = newSize
			c.pageIndex++

			if c.pageIndex == c.nrPages {
				result = errcode.NoError
				metrics.IncSessionInfoCompletion()
			}
		} else {
			result = errcode.BufferOverflow
			c.reset()
		}
	}

	return result
}

// String returns the reassembled blob and true if it is complete
// (pageIndex has reached nrPages and at least one page was ever received);
// otherwise it returns "", false.
func (c *Context) String() (string, bool) {
	if c.nrPages != 0 && c.pageIndex == c.nrPages {
		return string(c.data[:c.length]), true
	}
	return "", false
}
