package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGatePassRequiresEnabledLevelAndArea(t *testing.T) {
	g := newGate()
	if g.pass(INFO, AreaDriver) {
		t.Error("a freshly-built gate should reject every call")
	}
	g.enabled = 1
	g.level = int32(INFO)
	if g.pass(INFO, AreaDriver) {
		t.Error("area still off, call should still be rejected")
	}
	*g.areas[AreaDriver] = 1
	if !g.pass(INFO, AreaDriver) {
		t.Error("enabled + level met + area on should pass")
	}
	if g.pass(DEBUG, AreaDriver) {
		t.Error("DEBUG below the configured INFO floor should be rejected")
	}
}

func TestSinkRotatesPastMaxBytes(t *testing.T) {
	dir := t.TempDir()
	s := &sink{path: filepath.Join(dir, "test.log"), maxBytes: 10, backups: 2}
	if err := s.open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.close()

	s.write("0123456789AB\n") // exceeds maxBytes, triggers rotate
	if _, err := os.Stat(s.path + ".1"); err != nil {
		t.Errorf("expected %s.1 to exist after rotation: %v", s.path, err)
	}
	if s.size != 0 {
		t.Errorf("size after rotation = %d, want 0", s.size)
	}
}

func TestTagOnNilLoggerIsNoop(t *testing.T) {
	var zero Tag
	zero.Debug(AreaDriver, "should not panic")
	zero.Info(AreaDriver, "should not panic")
}
