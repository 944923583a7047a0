package version

import "testing"

func TestString(t *testing.T) {
	if got := String(); got != "designkb dev (unknown, unknown)" {
		t.Errorf("unexpected version string %q", got)
	}
}
