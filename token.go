package embedcli

// Token is a lazily-produced (start, end) range into a raw line, as
// described in spec §3/§4.4. Escaped is true when the span contains a
// quote or backslash and therefore needs the Unescape pass before use;
// plain bare tokens skip that pass entirely.
type Token struct {
	Start, End int
	Escaped    bool
}

// Raw returns the token's unprocessed bytes, aliasing line.
func (t Token) Raw(line []byte) []byte { return line[t.Start:t.End] }

// Tokenizer walks a raw line producing Token values one at a time,
// honoring the grammar of spec §4.4:
//
//	line   := token ( sep token )*
//	sep    := one or more ASCII 0x20 (outside quotes)
//	token  := ( bare | quoted )+
//	bare   := any byte except 0x20 and '"', or a backslash escape
//	quoted := '"' ( any byte except '"' and '\\', or an escape )* '"'
//
// It holds only a position into the caller's line — no allocation, no
// materialized token list.
type Tokenizer struct {
	line []byte
	pos  int
}

// NewTokenizer starts tokenization of line from the beginning.
func NewTokenizer(line []byte) *Tokenizer {
	return &Tokenizer{line: line}
}

// Next returns the next token, or ok=false once the line is exhausted.
// Tokenization is a pure function of line and the current position: two
// Tokenizers over the same bytes always produce the same sequence.
func (t *Tokenizer) Next() (Token, bool) {
	for t.pos < len(t.line) && t.line[t.pos] == ' ' {
		t.pos++
	}
	if t.pos >= len(t.line) {
		return Token{}, false
	}

	start := t.pos
	inQuote := false
	escaped := false
	for t.pos < len(t.line) {
		c := t.line[t.pos]
		switch {
		case c == '\\':
			escaped = true
			t.pos++
			if t.pos < len(t.line) {
				t.pos++ // the escaped byte is taken literally, skip over it too
			}
			// A lone trailing backslash (t.pos == len(t.line) here) is
			// retained as-is, per spec §4.4.
		case c == '"':
			escaped = true
			inQuote = !inQuote
			t.pos++
		case c == ' ' && !inQuote:
			goto done
		default:
			t.pos++
		}
	}
done:
	return Token{Start: start, End: t.pos, Escaped: escaped}, true
}

// Unescape resolves a token's literal bytes, stripping quote delimiters
// and unescaping backslash sequences. If dst is nil, unescaping happens
// in place over the token's own span in line — always safe because the
// destination index never exceeds the source index (every transformation
// the grammar allows is contracting: a '"' or the backslash of an escape
// pair is dropped, never replaced with something longer). If dst is
// non-nil its length must be at least tok.End-tok.Start bytes.
func Unescape(line []byte, tok Token, dst []byte) []byte {
	src := line[tok.Start:tok.End]
	if !tok.Escaped {
		if dst == nil {
			return src
		}
		return append(dst[:0], src...)
	}
	if dst == nil {
		dst = src
	}
	di := 0
	inQuote := false
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\':
			i++
			if i < len(src) {
				dst[di] = src[i]
				di++
				i++
			} else {
				dst[di] = '\\'
				di++
			}
		case c == '"':
			inQuote = !inQuote
			i++
		default:
			dst[di] = c
			i++
			di++
		}
	}
	return dst[:di]
}

// CountTokens returns the number of tokens in line, without allocating a
// slice to hold them.
func CountTokens(line []byte) int {
	tz := NewTokenizer(line)
	n := 0
	for {
		if _, ok := tz.Next(); !ok {
			break
		}
		n++
	}
	return n
}

// tokenizeStrings materializes the tokens of line (up to, but not
// including, any token starting at or after stopAt; stopAt<0 means no
// limit) as unescaped strings. When inPlace is true, unescaping happens
// destructively over line's own bytes — safe and allocation-light when
// the caller is about to discard or reset the line anyway (the Enter
// path). When inPlace is false, scratch (sized at least CMDLEN) is used
// as non-destructive unescape scratch space so the live line buffer is
// left untouched (the Tab path, mid-edit).
//
// This is the one place the core builds a []string: it happens only on
// Enter or Tab, at human-interaction cadence, never per byte — see
// DESIGN.md for the allocation-boundary rationale.
func tokenizeStrings(line []byte, stopAt int, inPlace bool, scratch []byte) []string {
	var out []string
	tz := NewTokenizer(line)
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		if stopAt >= 0 && tok.Start >= stopAt {
			break
		}
		var dst []byte
		if !inPlace {
			dst = scratch[:tok.End-tok.Start]
		}
		out = append(out, string(Unescape(line, tok, dst)))
	}
	return out
}

// LastTokenEndingAt returns the token whose End equals cursor — the
// "partial" token that autocomplete operates on. ok is false if no token ends exactly at cursor (cursor is mid-token
// or the line is empty there), in which case spec §4.6 requires
// completion to be a no-op.
func LastTokenEndingAt(line []byte, cursor int) (Token, bool) {
	tz := NewTokenizer(line)
	var last Token
	found := false
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		if tok.End == cursor {
			last = tok
			found = true
			break
		}
		if tok.Start > cursor {
			break
		}
	}
	return last, found
}
