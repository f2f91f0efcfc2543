package wad

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeWad assembles a minimal WAD file from a magic and a list of raw
// lumps and returns its path. Each lump's descriptor offset points at its
// own data immediately following any padGap bytes written ahead of it, so
// a lump with a nonzero padGap starts a genuinely non-contiguous block
// (the padding bytes belong to no descriptor).
func writeWad(t *testing.T, magic string, lumps []rawLump) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.wad")

	var blob bytes.Buffer
	type rec struct {
		offset uint32
		length uint32
		name   string
	}
	var recs []rec

	for _, l := range lumps {
		blob.Write(make([]byte, l.padGap))
		off := uint32(headerSize + blob.Len())
		blob.Write(l.data)
		recs = append(recs, rec{offset: off, length: uint32(len(l.data)), name: l.name})
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	header := make([]byte, headerSize)
	copy(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(recs)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(headerSize+blob.Len()))
	if _, err := f.Write(header); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(blob.Bytes()); err != nil {
		t.Fatal(err)
	}

	for _, r := range recs {
		var out [descriptorSize]byte
		binary.LittleEndian.PutUint32(out[0:4], r.offset)
		binary.LittleEndian.PutUint32(out[4:8], r.length)
		name := encodeName(r.name, false)
		copy(out[8:16], name[:])
		if _, err := f.Write(out[:]); err != nil {
			t.Fatal(err)
		}
	}

	return path
}

type rawLump struct {
	name   string
	data   []byte
	padGap int // bytes of unattributed padding written before this lump's data
}

// TestLoadMinimal covers S1: empty archive round-trips byte for byte.
func TestLoadMinimal(t *testing.T) {
	path := writeWad(t, "PWAD", nil)
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Magic() != "PWAD" {
		t.Fatalf("Magic: got %q", a.Magic())
	}

	var dir []string
	if n := a.GetDirectory("/", &dir); n != 0 {
		t.Fatalf("GetDirectory: got %d entries, want 0", n)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(before) != headerSize {
		t.Fatalf("expected %d-byte file after save, got %d", headerSize, len(before))
	}
	if !bytes.Equal(before, original) {
		t.Fatalf("saved bytes %x differ from original %x", before, original)
	}
}

// TestSingleLump covers S2: a lone content lump at root.
func TestSingleLump(t *testing.T) {
	path := writeWad(t, "PWAD", []rawLump{{name: "LUMP", data: []byte("hello world!")}})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	if !a.IsContent("/LUMP") {
		t.Fatal("expected /LUMP to be content")
	}
	if size := a.GetSize("/LUMP"); size != 12 {
		t.Fatalf("GetSize: got %d, want 12", size)
	}

	buf := make([]byte, 5)
	if n := a.GetContents("/LUMP", buf, 5, 0); n != 5 || string(buf) != "hello" {
		t.Fatalf("GetContents head: n=%d buf=%q", n, buf)
	}

	buf2 := make([]byte, 100)
	if n := a.GetContents("/LUMP", buf2, 100, 6); n != 6 || string(buf2[:6]) != "world!" {
		t.Fatalf("GetContents tail: n=%d buf=%q", n, buf2[:n])
	}
}

// TestNamespaceNesting covers S3: nested _START/_END namespaces.
func TestNamespaceNesting(t *testing.T) {
	path := writeWad(t, "PWAD", []rawLump{
		{name: "F_START", data: nil},
		{name: "A", data: []byte("abc")},
		{name: "G_START", data: nil},
		{name: "B", data: []byte("de")},
		{name: "G_END", data: nil},
		{name: "F_END", data: nil},
	})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	if size := a.GetSize("/F/A"); size != 3 {
		t.Fatalf("/F/A size: got %d, want 3", size)
	}
	if size := a.GetSize("/F/G/B"); size != 2 {
		t.Fatalf("/F/G/B size: got %d, want 2", size)
	}

	var fChildren []string
	if n := a.GetDirectory("/F", &fChildren); n != 2 {
		t.Fatalf("/F children count: got %d, want 2", n)
	}
	if fChildren[0] != "A" || fChildren[1] != "G" {
		t.Fatalf("/F children order: got %v", fChildren)
	}

	var gChildren []string
	if n := a.GetDirectory("/F/G", &gChildren); n != 1 || gChildren[0] != "B" {
		t.Fatalf("/F/G children: got %v", gChildren)
	}
}

// TestMapDirectoryInference covers S4: implicit E#M# directories closed by
// the onset of the next non-contiguous map marker. The gap before the
// second "E1M2" marker is what actually triggers the closure check in
// buildTree (a marker's own zero length alone does not); without it,
// E1M2 would be parsed as a child of E1M1 instead of a root sibling.
func TestMapDirectoryInference(t *testing.T) {
	path := writeWad(t, "IWAD", []rawLump{
		{name: "E1M1", data: nil},
		{name: "THINGS", data: []byte("abcd")},
		{name: "LINEDEFS", data: []byte("efgh")},
		{name: "E1M2", data: nil, padGap: 4},
		{name: "THINGS", data: []byte("ijkl")},
	})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	var m1 []string
	if n := a.GetDirectory("/E1M1", &m1); n != 2 || m1[0] != "THINGS" || m1[1] != "LINEDEFS" {
		t.Fatalf("/E1M1 children: got %v", m1)
	}

	var m2 []string
	if n := a.GetDirectory("/E1M2", &m2); n != 1 || m2[0] != "THINGS" {
		t.Fatalf("/E1M2 children: got %v", m2)
	}
}

// TestUnmatchedEndPopsNothing exercises the literal "pop nothing if no
// ancestor matches" rule for an unmatched namespace-end marker.
func TestUnmatchedEndPopsNothing(t *testing.T) {
	path := writeWad(t, "PWAD", []rawLump{
		{name: "F_START", data: nil},
		{name: "A", data: []byte("x")},
		{name: "NOPE_END", data: nil},
		{name: "B", data: []byte("y")},
		{name: "F_END", data: nil},
	})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	var children []string
	if n := a.GetDirectory("/F", &children); n != 2 || children[0] != "A" || children[1] != "B" {
		t.Fatalf("/F children: got %v (want A still nested under F alongside B)", children)
	}
}

// TestCreateAndWriteThenSave covers S5/S6-style mutation followed by a
// round trip through Close and a fresh Load.
func TestCreateAndWriteThenSave(t *testing.T) {
	path := writeWad(t, "PWAD", []rawLump{{name: "OLD", data: []byte("keep")}})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a.CreateDirectory("XX")
	a.CreateFile("/XX/NEW")
	if n := a.WriteToFile("/XX/NEW", []byte("fresh data"), 10, 0); n != 10 {
		t.Fatalf("WriteToFile: got %d, want 10", n)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	defer b.Close()

	if size := b.GetSize("/OLD"); size != 4 {
		t.Fatalf("/OLD size after round trip: got %d, want 4", size)
	}
	buf := make([]byte, 4)
	if n := b.GetContents("/OLD", buf, 4, 0); n != 4 || string(buf) != "keep" {
		t.Fatalf("/OLD contents: n=%d buf=%q", n, buf)
	}

	if size := b.GetSize("/XX/NEW"); size != 10 {
		t.Fatalf("/XX/NEW size: got %d, want 10", size)
	}
	buf2 := make([]byte, 10)
	if n := b.GetContents("/XX/NEW", buf2, 10, 0); n != 10 || string(buf2) != "fresh data" {
		t.Fatalf("/XX/NEW contents: n=%d buf=%q", n, buf2)
	}
}

// TestFirstWriteOnly covers property 6: a lump loaded with nonzero length
// rejects further writes.
func TestFirstWriteOnly(t *testing.T) {
	path := writeWad(t, "PWAD", []rawLump{{name: "LUMP", data: []byte("orig")}})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	if n := a.WriteToFile("/LUMP", []byte("replaced!"), 9, 0); n != 0 {
		t.Fatalf("WriteToFile on pre-loaded lump: got %d, want 0", n)
	}

	buf := make([]byte, 4)
	if n := a.GetContents("/LUMP", buf, 4, 0); n != 4 || string(buf) != "orig" {
		t.Fatalf("contents after rejected write: n=%d buf=%q", n, buf)
	}
}

// TestMutatorRuleViolationsAreSilentNoops covers §4.5 / §7's silent no-op
// contract for mutator rule violations.
func TestMutatorRuleViolationsAreSilentNoops(t *testing.T) {
	path := writeWad(t, "PWAD", nil)

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	a.CreateDirectory("/TOOLONG") // > 2 chars, must no-op
	var root []string
	if n := a.GetDirectory("/", &root); n != 0 {
		t.Fatalf("expected no directory created, got %v", root)
	}

	a.CreateFile("/MISSING/FILE") // parent doesn't exist
	if a.IsContent("/MISSING/FILE") {
		t.Fatal("expected no file created under missing parent")
	}

	a.CreateDirectory("/XX")
	a.CreateFile("/XX/DUP")
	a.CreateFile("/XX/DUP") // duplicate sibling, second call must no-op

	var xxChildren []string
	if n := a.GetDirectory("/XX", &xxChildren); n != 1 {
		t.Fatalf("expected exactly 1 child under /XX, got %v", xxChildren)
	}
}

// TestGetSentinelsForAbsentAndWrongKind covers the §6.1 sentinel table
// for query operations.
func TestGetSentinelsForAbsentAndWrongKind(t *testing.T) {
	path := writeWad(t, "PWAD", []rawLump{{name: "LUMP", data: []byte("abc")}})

	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()

	if a.IsContent("/NOPE") {
		t.Fatal("IsContent on absent path should be false")
	}
	if a.IsDirectory("") {
		t.Fatal("IsDirectory on empty path should be false")
	}
	if size := a.GetSize("/NOPE"); size != -1 {
		t.Fatalf("GetSize on absent path: got %d, want -1", size)
	}
	if size := a.GetSize("/"); size != -1 {
		t.Fatalf("GetSize on directory: got %d, want -1", size)
	}

	buf := make([]byte, 4)
	if n := a.GetContents("/LUMP", nil, 4, 0); n != -1 {
		t.Fatalf("GetContents nil buffer: got %d, want -1", n)
	}
	if n := a.GetContents("/LUMP", buf, 0, 0); n != -1 {
		t.Fatalf("GetContents zero length: got %d, want -1", n)
	}
	if n := a.GetContents("/LUMP", buf, 4, 100); n != 0 {
		t.Fatalf("GetContents offset past end: got %d, want 0", n)
	}

	var out []string
	if n := a.GetDirectory("", &out); n != -1 {
		t.Fatalf("GetDirectory empty path: got %d, want -1", n)
	}
	if n := a.GetDirectory("/LUMP", &out); n != -1 {
		t.Fatalf("GetDirectory on content path: got %d, want -1", n)
	}
}
