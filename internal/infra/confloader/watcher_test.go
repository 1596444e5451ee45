package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0640); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	defer w.Stop()

	changed := make(chan string, 4)
	w.OnChange(func(p string) { changed <- p })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	w.StartAsync()

	// Give the watcher loop a moment to start.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0640); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if filepath.Base(p) != "config.yaml" {
			t.Errorf("changed path = %q", p)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}
