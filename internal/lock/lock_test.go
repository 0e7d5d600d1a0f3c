package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestTryLockAndUnlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repofill.lock")
	fl := NewFileLock(path)

	if err := fl.TryLock(); err != nil {
		t.Fatalf("TryLock: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid != os.Getpid() {
		t.Errorf("lock file PID: got %q, want %d", strings.TrimSpace(string(data)), os.Getpid())
	}

	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("lock file should be removed after unlock")
	}
}

func TestSecondLockFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repofill.lock")

	first := NewFileLock(path)
	if err := first.TryLock(); err != nil {
		t.Fatalf("first TryLock: %v", err)
	}
	defer first.Unlock()

	second := NewFileLock(path)
	if err := second.TryLock(); err == nil {
		second.Unlock()
		t.Fatal("second TryLock should fail while first is held")
	}
}

func TestUnlockWithoutLockIsNoOp(t *testing.T) {
	fl := NewFileLock(filepath.Join(t.TempDir(), "repofill.lock"))
	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock without lock: %v", err)
	}
}

func TestRelockAfterUnlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repofill.lock")
	fl := NewFileLock(path)

	if err := fl.TryLock(); err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if err := fl.TryLock(); err != nil {
		t.Fatalf("relock: %v", err)
	}
	fl.Unlock()
}
