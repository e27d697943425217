package embedcli

import "bytes"

// HistoryRing is the packed, fixed-capacity history store of spec §3/§4.5:
// entries laid out back-to-back as `varint(len) || bytes`, oldest first,
// newest at the logical end. Total encoded size never exceeds HISTLEN;
// on overflow the oldest entries are evicted until the new one fits.
//
// Navigation index h: 0 selects the current draft, 1 the newest entry, up
// to the number of stored entries (the oldest). A draft captured on the
// first Up is held in a second fixed buffer sized to CMDLEN — allocated
// once at construction, like LineBuffer's backing array, never on the
// per-byte path.
type HistoryRing struct {
	buf []byte
	n   int

	h int

	draft    []byte
	draftLen int
	draftSet bool
}

// NewHistoryRing allocates the ring's backing storage and draft slot.
// histlen may be zero (history disabled, spec §6 "history" toggle).
func NewHistoryRing(histlen, cmdlen int) *HistoryRing {
	if histlen < 0 {
		histlen = 0
	}
	if cmdlen < 0 {
		cmdlen = 0
	}
	return &HistoryRing{buf: make([]byte, histlen), draft: make([]byte, cmdlen)}
}

// Cap returns HISTLEN.
func (r *HistoryRing) Cap() int { return len(r.buf) }

// Size returns the number of bytes currently used for encoded entries.
func (r *HistoryRing) Size() int { return r.n }

// NavIndex returns h, the current navigation cursor.
func (r *HistoryRing) NavIndex() int { return r.h }

// forEachEntry walks encoded entries oldest-to-newest, calling fn with
// each entry's bytes (aliasing buf). It stops early if fn returns false.
func forEachEntry(buf []byte, fn func(data []byte) bool) {
	i := 0
	for i < len(buf) {
		val, width := decodeVarint(buf[i:])
		if width == 0 {
			return
		}
		start := i + width
		end := start + val
		if end > len(buf) {
			return
		}
		if !fn(buf[start:end]) {
			return
		}
		i = end
	}
}

// Count returns the number of stored entries.
func (r *HistoryRing) Count() int {
	n := 0
	forEachEntry(r.buf[:r.n], func([]byte) bool { n++; return true })
	return n
}

// entryFromNewest returns the k-th entry counting from the newest (k=1),
// or ok=false if k is out of range.
func (r *HistoryRing) entryFromNewest(k int) (data []byte, ok bool) {
	if k < 1 {
		return nil, false
	}
	count := r.Count()
	if k > count {
		return nil, false
	}
	targetIdx := count - k
	idx := 0
	forEachEntry(r.buf[:r.n], func(d []byte) bool {
		if idx == targetIdx {
			data = d
			ok = true
			return false
		}
		idx++
		return true
	})
	return data, ok
}

func (r *HistoryRing) evictOldest() bool {
	if r.n == 0 {
		return false
	}
	val, width := decodeVarint(r.buf[:r.n])
	if width == 0 {
		// Corrupt header; drop everything rather than loop forever.
		r.n = 0
		return true
	}
	total := width + val
	if total > r.n {
		r.n = 0
		return true
	}
	copy(r.buf, r.buf[total:r.n])
	r.n -= total
	return true
}

// Submit appends line as the newest entry, following spec §4.5:
//  1. skip if line equals the newest entry;
//  2. evict the oldest entries until the encoded size fits;
//  3. append.
//
// Empty lines are never stored — the caller (Session Controller) is
// expected to have already filtered those, but Submit guards it too since
// an empty history entry can never be a meaningful recall target.
func (r *HistoryRing) Submit(line []byte) {
	if len(line) == 0 {
		return
	}
	if newest, ok := r.entryFromNewest(1); ok && bytes.Equal(newest, line) {
		r.resetNav()
		return
	}
	var hdr [5]byte
	hdrLen := encodeVarintInto(&hdr, len(line))
	header := hdr[:hdrLen]
	need := len(header) + len(line)
	if need > len(r.buf) {
		// The entry can never fit even in an empty ring; drop it
		// silently rather than corrupt the packed layout.
		r.resetNav()
		return
	}
	for r.n+need > len(r.buf) {
		if !r.evictOldest() {
			break
		}
	}
	copy(r.buf[r.n:], header)
	copy(r.buf[r.n+len(header):], line)
	r.n += need
	r.resetNav()
}

func (r *HistoryRing) resetNav() {
	r.h = 0
	r.draftSet = false
}

// Up moves the navigation cursor toward older entries, saturating at the
// oldest. current is the line buffer's content at the moment of the
// first Up press in a navigation sequence — it is captured as the
// restorable draft. Returns the entry to display and whether one exists
// (false only when there is no history at all).
func (r *HistoryRing) Up(current []byte) (data []byte, ok bool) {
	if r.h == 0 && !r.draftSet {
		n := copy(r.draft, current)
		r.draftLen = n
		r.draftSet = true
	}
	count := r.Count()
	if count == 0 {
		return nil, false
	}
	if r.h < count {
		r.h++
	}
	return r.entryFromNewest(r.h)
}

// Down moves the navigation cursor toward the draft. If it reaches 0 and
// the draft is still intact, the draft is returned with isDraft=true. If
// the draft was dropped (DropDraft, after an edit mid-navigation) ok is
// false and the caller must leave the line buffer untouched, per spec
// §4.5's "a subsequent Down does not restore it".
func (r *HistoryRing) Down() (data []byte, isDraft bool, ok bool) {
	if r.h == 0 {
		return nil, false, false
	}
	r.h--
	if r.h == 0 {
		if r.draftSet {
			return r.draft[:r.draftLen], true, true
		}
		return nil, false, false
	}
	data, ok = r.entryFromNewest(r.h)
	return data, false, ok
}

// DropDraft discards the saved pre-navigation draft, called by the
// controller when the user edits the line while h>0.
func (r *HistoryRing) DropDraft() { r.draftSet = false }

// --- varint: unsigned LEB128, smallest encoding that fits a CMDLEN-sized length ---

// encodeVarintInto writes v's unsigned LEB128 encoding into buf (which
// must have room for 5 bytes — enough for any length this engine will
// ever hold) and returns the number of bytes written. No allocation.
func encodeVarintInto(buf *[5]byte, v int) int {
	if v < 0 {
		v = 0
	}
	i := 0
	u := uint32(v)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			buf[i] = b | 0x80
			i++
		} else {
			buf[i] = b
			i++
			break
		}
	}
	return i
}

func decodeVarint(buf []byte) (value int, width int) {
	var u uint32
	shift := uint(0)
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		u |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return int(u), i + 1
		}
		shift += 7
		if shift > 35 {
			return 0, 0
		}
	}
	return 0, 0
}
