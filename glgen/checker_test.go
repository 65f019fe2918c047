package glgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUidCheckerRecordsAndAccepts(t *testing.T) {
	dir := t.TempDir()
	c := NewUidChecker[testRecord](dir, nil)
	var uid Uid[testRecord]
	uid.Data = testRecord{A: 1}

	code := []byte("void main(){}\n")
	c.RecordAndCheck(code, &uid, "test", "t_")
	if c.Len() != 1 {
		t.Fatalf("Len=%d after first record, want 1", c.Len())
	}
	// Same uid, same text: the expected steady state, nothing changes.
	c.RecordAndCheck(code, &uid, "test", "t_")
	if c.Len() != 1 {
		t.Errorf("Len=%d after repeat record, want 1", c.Len())
	}
	if dumps := dumpFiles(t, dir); len(dumps) != 0 {
		t.Errorf("unexpected mismatch dumps: %v", dumps)
	}

	var other Uid[testRecord]
	other.Data = testRecord{A: 2}
	c.RecordAndCheck([]byte("other\n"), &other, "test", "t_")
	if c.Len() != 2 {
		t.Errorf("Len=%d after distinct uid, want 2", c.Len())
	}
}

func TestUidCheckerCollisionDump(t *testing.T) {
	dir := t.TempDir()
	c := NewUidChecker[testRecord](dir, nil)
	var uid Uid[testRecord]
	uid.Data = testRecord{A: 1, B: 2}

	oldCode := "// old shader\n"
	newCode := "// new shader\n"
	c.RecordAndCheck([]byte(oldCode), &uid, "test", "t_")
	c.RecordAndCheck([]byte(newCode), &uid, "test", "t_")

	dumps := dumpFiles(t, dir)
	if len(dumps) != 1 {
		t.Fatalf("got %d mismatch dumps, want 1: %v", len(dumps), dumps)
	}
	if dumps[0] != "t_suid_mismatch_0001.txt" {
		t.Errorf("dump name %q, want t_suid_mismatch_0001.txt", dumps[0])
	}
	data, err := os.ReadFile(filepath.Join(dir, dumps[0]))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{
		"Old shader code:\n" + oldCode,
		"New shader code:\n" + newCode,
		"Shader uid:\n",
		"Words  0 -  2: ",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("dump missing %q:\n%s", want, content)
		}
	}

	// The colliding text replaced the stored text, so repeating it is
	// quiet again.
	c.RecordAndCheck([]byte(newCode), &uid, "test", "t_")
	if got := dumpFiles(t, dir); len(got) != 1 {
		t.Errorf("repeat of replacement text dumped again: %v", got)
	}
}

func TestUidCheckerInvalidate(t *testing.T) {
	dir := t.TempDir()
	c := NewUidChecker[testRecord](dir, nil)
	var uid Uid[testRecord]
	uid.Data = testRecord{A: 1}

	c.RecordAndCheck([]byte("a\n"), &uid, "test", "t_")
	c.RecordAndCheck([]byte("b\n"), &uid, "test", "t_") // collision 0001
	c.Invalidate()
	if c.Len() != 0 {
		t.Fatalf("Len=%d after Invalidate, want 0", c.Len())
	}
	// Mismatch numbering survives invalidation so dumps never overwrite.
	c.RecordAndCheck([]byte("c\n"), &uid, "test", "t_")
	c.RecordAndCheck([]byte("d\n"), &uid, "test", "t_") // collision 0002
	dumps := dumpFiles(t, dir)
	if len(dumps) != 2 {
		t.Fatalf("got %d dumps, want 2: %v", len(dumps), dumps)
	}
	if dumps[1] != "t_suid_mismatch_0002.txt" {
		t.Errorf("second dump %q, want t_suid_mismatch_0002.txt", dumps[1])
	}
}

func dumpFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
