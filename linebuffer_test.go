package embedcli

import "testing"

func TestLineBufferInsertAndFull(t *testing.T) {
	t.Run("insert within capacity", func(t *testing.T) {
		lb := NewLineBuffer(8)
		if !lb.InsertAt(0, []byte("ab")) {
			t.Fatal("insert should succeed")
		}
		if !lb.InsertAt(2, []byte("cd")) {
			t.Fatal("insert should succeed")
		}
		if string(lb.Bytes()) != "abcd" {
			t.Errorf("got %q", lb.Bytes())
		}
	})

	t.Run("insert beyond CMDLEN fails and leaves buffer unchanged", func(t *testing.T) {
		lb := NewLineBuffer(4)
		if !lb.InsertAt(0, []byte("abcd")) {
			t.Fatal("insert should succeed")
		}
		if lb.InsertAt(4, []byte("e")) {
			t.Fatal("insert should fail: buffer is full")
		}
		if string(lb.Bytes()) != "abcd" {
			t.Errorf("buffer mutated on failed insert: %q", lb.Bytes())
		}
	})

	t.Run("insert in the middle shifts tail right", func(t *testing.T) {
		lb := NewLineBuffer(8)
		lb.InsertAt(0, []byte("ac"))
		lb.InsertAt(1, []byte("b"))
		if string(lb.Bytes()) != "abc" {
			t.Errorf("got %q", lb.Bytes())
		}
	})
}

func TestLineBufferRemoveRange(t *testing.T) {
	lb := NewLineBuffer(8)
	lb.InsertAt(0, []byte("abcde"))
	lb.RemoveRange(1, 3) // remove "bc"
	if string(lb.Bytes()) != "ade" {
		t.Errorf("got %q", lb.Bytes())
	}
}

func TestLineBufferCursorInvariant(t *testing.T) {
	lb := NewLineBuffer(8)
	lb.InsertAt(0, []byte("abc"))
	lb.SetCursor(10) // clamp
	if lb.Cursor() != lb.Len() {
		t.Errorf("cursor not clamped to length: %d vs %d", lb.Cursor(), lb.Len())
	}
	lb.SetCursor(-5)
	if lb.Cursor() != 0 {
		t.Errorf("cursor not clamped to 0: %d", lb.Cursor())
	}
}

func TestLineBufferMoveCursorCodepoint(t *testing.T) {
	lb := NewLineBuffer(16)
	// "héllo": h, é (2 bytes), l, l, o
	lb.InsertAt(0, []byte("h\xc3\xa9llo"))
	lb.SetCursor(0)

	lb.MoveCursorCodepoint(1) // onto 'h' -> past it, to start of é
	if lb.Cursor() != 1 {
		t.Fatalf("after 1 right, cursor=%d, want 1", lb.Cursor())
	}
	lb.MoveCursorCodepoint(1) // past é (2 bytes) -> cursor 3
	if lb.Cursor() != 3 {
		t.Fatalf("after 2nd right, cursor=%d, want 3 (skip whole codepoint)", lb.Cursor())
	}
	lb.MoveCursorCodepoint(-1) // back onto start of é
	if lb.Cursor() != 1 {
		t.Fatalf("after left, cursor=%d, want 1", lb.Cursor())
	}

	// Clamp at both ends.
	lb.MoveCursorCodepoint(-100)
	if lb.Cursor() != 0 {
		t.Errorf("left clamp failed: cursor=%d", lb.Cursor())
	}
	lb.MoveCursorCodepoint(100)
	if lb.Cursor() != lb.Len() {
		t.Errorf("right clamp failed: cursor=%d, len=%d", lb.Cursor(), lb.Len())
	}
}

func TestLineBufferReplaceAll(t *testing.T) {
	lb := NewLineBuffer(8)
	lb.InsertAt(0, []byte("xy"))
	if !lb.ReplaceAll([]byte("abcd")) {
		t.Fatal("replace should fit")
	}
	if string(lb.Bytes()) != "abcd" || lb.Cursor() != 4 {
		t.Errorf("got %q cursor=%d", lb.Bytes(), lb.Cursor())
	}
	if lb.ReplaceAll([]byte("toolongforthis")) {
		t.Fatal("replace should fail: exceeds capacity")
	}
	if string(lb.Bytes()) != "abcd" {
		t.Errorf("buffer mutated on failed replace: %q", lb.Bytes())
	}
}
