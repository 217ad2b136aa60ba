package errcode

import "testing"

func TestStringKnownCodes(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{NoError, "NO_ERROR"},
		{Error, "ERROR"},
		{NullPointer, "NULL_POINTER"},
		{InvalidCrc, "INVALID_CRC"},
		{InvalidFrame, "INVALID_FRAME"},
		{TimeOut, "TIME_OUT"},
		{WriteError, "WRITE_ERROR"},
		{ReadError, "READ_ERROR"},
		{BufferOverflow, "BUFFER_OVERFLOW"},
		{InvalidParameter, "INVALID_PARAMETER"},
		{NotReady, "NOT_READY"},
		{MallocFailed, "MALLOC_FAILED"},
		{OperationCancelled, "OPERATION_CANCELLED"},
		{IncompatibleHardware, "INCOMPATIBLE_HARDWARE"},
		{InvalidVersion, "INVALID_VERSION"},
	}
	for _, c := range cases {
		if got := c.code.String(); got != c.want {
			t.Errorf("Code(%d).String() = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestStringUnknownCode(t *testing.T) {
	if got := Code(999).String(); got != "UNKNOWN_ERROR_CODE" {
		t.Errorf("String() = %q, want UNKNOWN_ERROR_CODE", got)
	}
	if got := Code(-1).String(); got != "UNKNOWN_ERROR_CODE" {
		t.Errorf("String() = %q, want UNKNOWN_ERROR_CODE", got)
	}
}

func TestOK(t *testing.T) {
	if !NoError.OK() {
		t.Error("NoError.OK() = false, want true")
	}
	if InvalidCrc.OK() {
		t.Error("InvalidCrc.OK() = true, want false")
	}
}
