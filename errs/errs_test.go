package errs

import (
	"errors"
	"fmt"
	"testing"
)

func Test_IsByCode(t *testing.T) {
	err := WithMetadata(CodeUnexpectedEndOfData, "unexpected end of data", map[string]string{"offset": "0x10"})
	if !errors.Is(err, ErrUnexpectedEndOfData) {
		t.Error("coded error does not match its sentinel")
	}
	if errors.Is(err, ErrSlotOverrun) {
		t.Error("coded error matches a different sentinel")
	}

	wrapped := fmt.Errorf("slot 3: %w", WrapWithMetadata(CodeUnexpectedEndOfData, "decode ride", map[string]string{"field": "ride"}, err))
	if !errors.Is(wrapped, ErrUnexpectedEndOfData) {
		t.Error("wrapping lost the code")
	}
	if CodeOf(wrapped) != CodeUnexpectedEndOfData {
		t.Errorf("CodeOf = %v", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Error("plain errors should have no code")
	}
}

func Test_Message(t *testing.T) {
	cause := New(CodeBufferOverrun, "buffer overrun")
	err := WrapWithMetadata(CodeSlotOverrun, "encode tail", map[string]string{"offset": "0x4", "field": "tail"}, cause)
	want := "encode tail (field=tail, offset=0x4): buffer overrun"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if Newf(CodeInvalidArgument, "bad area %d", 0).Error() != "bad area 0" {
		t.Error("Newf did not format")
	}
}
