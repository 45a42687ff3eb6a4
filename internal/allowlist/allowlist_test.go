package allowlist

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_missingFile(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"), NormalizeMAC)
	if err == nil {
		t.Fatal("Load(missing file) = nil error; want error")
	}
	if l != nil {
		t.Fatalf("Load(missing file) = %v; want nil list", l)
	}
}

func TestAllows_nilReceiverPassesEverything(t *testing.T) {
	var l *AllowList
	if !l.Allows("AA:BB:CC:DD:EE:FF") {
		t.Error("nil AllowList rejected an address; absent filter must pass everything")
	}
	if !l.Allows("") {
		t.Error("nil AllowList rejected empty string")
	}
	if got := l.Len(); got != 0 {
		t.Errorf("nil AllowList Len() = %d; want 0", got)
	}
}

func TestLoad_emptyFileIsActiveFilter(t *testing.T) {
	l, err := Load(writeList(t, ""), NormalizeMAC)
	if err != nil {
		t.Fatalf("Load(empty file) = %v; want nil", err)
	}
	if l == nil {
		t.Fatal("Load(empty file) = nil list; present-empty must stay distinct from absent")
	}
	if got := l.Len(); got != 0 {
		t.Errorf("Len() = %d; want 0", got)
	}
	if l.Allows("AA:BB:CC:DD:EE:FF") {
		t.Error("empty active filter allowed an address; want nothing to pass")
	}
}

func TestLoad_macNormalization(t *testing.T) {
	l, err := Load(writeList(t, "aa:bb:cc:dd:ee:ff\n\n  11:22:33:44:55:66  \n"), NormalizeMAC)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	if got := l.Len(); got != 2 {
		t.Fatalf("Len() = %d; want 2 (blank lines dropped)", got)
	}
	for _, addr := range []string{
		"AA:BB:CC:DD:EE:FF",
		"aa:bb:cc:dd:ee:ff", // lookup normalizes too
		"11:22:33:44:55:66",
	} {
		if !l.Allows(addr) {
			t.Errorf("Allows(%q) = false; want true", addr)
		}
	}
	if l.Allows("DE:AD:BE:EF:00:01") {
		t.Error("Allows(unlisted address) = true; want false")
	}
}

func TestLoad_uuidNormalization(t *testing.T) {
	l, err := Load(writeList(t, "DDCE36F1-417C-48E1-A8EA-E286E1E5498E\n"), NormalizeUUID)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	if !l.Allows("ddce36f1-417c-48e1-a8ea-e286e1e5498e") {
		t.Error("Allows(lowercase uuid) = false; want true")
	}
	if !l.Allows("DDCE36F1-417C-48E1-A8EA-E286E1E5498E") {
		t.Error("Allows(uppercase uuid) = false; want true after normalization")
	}
}

func TestLoad_malformedLinesStayOpaque(t *testing.T) {
	// No schema validation: junk loads fine, matches only itself.
	l, err := Load(writeList(t, "not-a-mac\n"), NormalizeMAC)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	if got := l.Len(); got != 1 {
		t.Fatalf("Len() = %d; want 1", got)
	}
	if l.Allows("AA:BB:CC:DD:EE:FF") {
		t.Error("Allows(real address) = true; want false against junk entry")
	}
}
