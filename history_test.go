package embedcli

import "testing"

func TestHistoryRingSubmitAndRecall(t *testing.T) {
	r := NewHistoryRing(64, 16)
	r.Submit([]byte("one"))
	r.Submit([]byte("two"))
	r.Submit([]byte("three"))

	if got, ok := r.Up([]byte("")); !ok || string(got) != "three" {
		t.Fatalf("got %q ok=%v, want three", got, ok)
	}
	if got, ok := r.Up([]byte("")); !ok || string(got) != "two" {
		t.Fatalf("got %q ok=%v, want two", got, ok)
	}
	if got, ok := r.Up([]byte("")); !ok || string(got) != "one" {
		t.Fatalf("got %q ok=%v, want one", got, ok)
	}
	// Saturate at oldest.
	if got, ok := r.Up([]byte("")); !ok || string(got) != "one" {
		t.Fatalf("saturation failed: got %q ok=%v", got, ok)
	}
}

func TestHistoryRingDedupVsNewest(t *testing.T) {
	// Submit a, b, a -> three entries stored (dedup only applies to the
	// immediately preceding entry).
	r := NewHistoryRing(64, 16)
	r.Submit([]byte("a"))
	r.Submit([]byte("b"))
	r.Submit([]byte("a"))
	if r.Count() != 3 {
		t.Fatalf("got %d entries, want 3", r.Count())
	}

	r2 := NewHistoryRing(64, 16)
	r2.Submit([]byte("a"))
	r2.Submit([]byte("a"))
	if r2.Count() != 1 {
		t.Fatalf("consecutive duplicate not deduped: got %d entries", r2.Count())
	}
}

func TestHistoryRingDraftPreservationAndRestore(t *testing.T) {
	r := NewHistoryRing(64, 16)
	r.Submit([]byte("cmd1"))

	draft := []byte("unsubmitted")
	got, ok := r.Up(draft)
	if !ok || string(got) != "cmd1" {
		t.Fatalf("got %q ok=%v", got, ok)
	}

	data, isDraft, ok := r.Down()
	if !ok || !isDraft || string(data) != "unsubmitted" {
		t.Fatalf("draft not restored: data=%q isDraft=%v ok=%v", data, isDraft, ok)
	}
}

func TestHistoryRingDropDraftBlocksRestore(t *testing.T) {
	r := NewHistoryRing(64, 16)
	r.Submit([]byte("cmd1"))
	r.Up([]byte("something"))
	r.DropDraft()

	_, _, ok := r.Down()
	if ok {
		t.Error("Down should report no-op once the draft has been dropped")
	}
}

func TestHistoryRingEvictsOldestOnOverflow(t *testing.T) {
	// Each entry "xN" encodes as 1-byte varint header + 2 bytes payload = 3.
	// Cap of 7 fits only two entries; a third forces eviction of the oldest.
	r := NewHistoryRing(7, 8)
	r.Submit([]byte("x1"))
	r.Submit([]byte("x2"))
	r.Submit([]byte("x3"))

	if got, ok := r.entryFromNewest(1); !ok || string(got) != "x3" {
		t.Fatalf("newest got %q ok=%v", got, ok)
	}
	if got, ok := r.entryFromNewest(2); !ok || string(got) != "x2" {
		t.Fatalf("2nd newest got %q ok=%v", got, ok)
	}
	if _, ok := r.entryFromNewest(3); ok {
		t.Error("x1 should have been evicted")
	}
}

func TestHistoryRingEntryTooLargeIsDroppedSilently(t *testing.T) {
	r := NewHistoryRing(4, 16)
	r.Submit([]byte("waytoolongforthisring"))
	if r.Count() != 0 {
		t.Errorf("oversized entry should not be stored, got %d entries", r.Count())
	}
}

func TestHistoryRingEmptyLineNeverStored(t *testing.T) {
	r := NewHistoryRing(64, 16)
	r.Submit([]byte(""))
	if r.Count() != 0 {
		t.Errorf("empty line should not be stored, got %d entries", r.Count())
	}
}

func TestHistoryRingEditDuringNavigationDropsDraftViaController(t *testing.T) {
	// HistoryRing itself doesn't know about edits; this documents the
	// contract Down() relies on (DropDraft is called by the controller).
	r := NewHistoryRing(64, 16)
	r.Submit([]byte("cmd1"))
	r.Submit([]byte("cmd2"))
	r.Up([]byte("draft"))
	r.Up([]byte("draft")) // h=2, draft already captured
	r.DropDraft()

	data, isDraft, ok := r.Down()
	if !ok || isDraft {
		t.Fatalf("expected an ordinary entry, not the draft: data=%q isDraft=%v ok=%v", data, isDraft, ok)
	}
	if string(data) != "cmd2" {
		t.Errorf("got %q, want cmd2", data)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []int{0, 1, 63, 64, 127, 128, 300, 16384, 1 << 20}
	for _, v := range cases {
		var buf [5]byte
		n := encodeVarintInto(&buf, v)
		got, width := decodeVarint(buf[:n])
		if width != n || got != v {
			t.Errorf("roundtrip(%d): got value=%d width=%d, want width=%d", v, got, width, n)
		}
	}
}
