package geoloc

import (
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{PermissionDenied, "location access denied"},
		{Unavailable, "unavailable"},
		{Timeout, "timed out"},
		{Unknown, "unknown error"},
		{Kind("something-new"), "unknown error"},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			e := &Error{Kind: tc.kind}
			if !strings.Contains(e.Message(), tc.want) {
				t.Errorf("Message() = %q, want it to mention %q", e.Message(), tc.want)
			}
			if !strings.HasPrefix(e.Error(), "location: ") {
				t.Errorf("Error() = %q, want location: prefix", e.Error())
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.HighAccuracy {
		t.Error("default options should request high accuracy")
	}
	if opts.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", opts.Timeout)
	}
	if opts.MaxAge != 5*time.Minute {
		t.Errorf("MaxAge = %v, want 5m", opts.MaxAge)
	}
}
