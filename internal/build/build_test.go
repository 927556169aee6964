package build

import "testing"

func TestVersion(t *testing.T) {
	if got := Version(); got != "0.1.0" {
		t.Errorf("Version() = %q, want embedded 0.1.0", got)
	}

	old := version
	version = "9.9.9"
	defer func() { version = old }()

	if got := Version(); got != "9.9.9" {
		t.Errorf("Version() = %q, want ldflags override 9.9.9", got)
	}
}

func TestCommitAndDate(t *testing.T) {
	if got := Commit(); got != "unknown" {
		t.Errorf("Commit() = %q, want unknown", got)
	}
	if got := Date(); got != "unknown" {
		t.Errorf("Date() = %q, want unknown", got)
	}
}
