package embedcli

import "errors"

// Config bundles the compile/build-time options of spec §6: fixed
// capacities and feature toggles. A zero Config is not usable directly —
// CMDLEN must be positive; HISTLEN may be zero only when EnableHistory is
// false.
type Config struct {
	CMDLEN             int
	HISTLEN            int
	Prompt             string
	EnableAutocomplete bool
	EnableHistory      bool
	EnableHelp         bool
}

// Controller is the Session Controller of spec §4.1: it owns the Line
// Buffer, History Ring, and Input Decoder for the session's lifetime,
// routes decoded events, reconciles the terminal display, and invokes
// the CommandSet on submit. ProcessByte is its sole entry point and must
// not be re-entered from within a Dispatch call (spec §5).
//
// The CommandSet is supplied once here, at construction — never rebuilt
// or reselected per call — resolving the apparent tension between
// spec §4.1's "process_byte(b, dispatcher)" signature and spec §9's
// "instantiate [the command descriptor] at session construction, never
// per-call": the dispatcher is a fixed collaborator of the session, not
// a per-byte parameter (see DESIGN.md).
type Controller struct {
	cfg    Config
	line   *LineBuffer
	hist   *HistoryRing
	dec    Decoder
	w      Writer
	cs     CommandSet
	prompt string

	// scratch is CMDLEN-sized non-destructive unescape/copy space for
	// the Tab and Enter paths; allocated once here, not per byte.
	scratch []byte

	// OnSubmit, if set, is called with each committed non-empty line
	// (after dispatch, before the line buffer is reset), whether or not
	// the in-RAM history ring is enabled — the write-through hook a host
	// uses to persist history via histstore, without making the ring
	// itself aware of persistence.
	OnSubmit func(line []byte)
}

// NewController constructs a session. It performs the session's one
// allocation (the line buffer, history ring, and scratch space); no
// further allocation occurs on the ProcessByte hot path.
func NewController(w Writer, cs CommandSet, cfg Config) *Controller {
	c := &Controller{
		cfg:     cfg,
		line:    NewLineBuffer(cfg.CMDLEN),
		w:       w,
		cs:      cs,
		prompt:  cfg.Prompt,
		scratch: make([]byte, cfg.CMDLEN),
	}
	if cfg.EnableHistory {
		c.hist = NewHistoryRing(cfg.HISTLEN, cfg.CMDLEN)
	}
	return c
}

// Start emits the initial prompt. Spec §4.1: "prompt emitted once at
// start."
func (c *Controller) Start() error {
	return writeStr(c.w, c.prompt)
}

// SetPrompt changes the prompt used on the next redraw (spec §4.1); it
// does not retroactively repaint the line currently being edited.
func (c *Controller) SetPrompt(s string) { c.prompt = s }

// PrimeHistory replays previously committed lines (oldest first) into
// the history ring, as if they had been submitted earlier in this
// process — used by a host's persistence layer to restore history across
// restarts (SPEC_FULL §4.9). It is a no-op if history is disabled.
func (c *Controller) PrimeHistory(lines [][]byte) {
	if !c.cfg.EnableHistory || c.hist == nil {
		return
	}
	for _, l := range lines {
		c.hist.Submit(l)
	}
}

// Line exposes the current edited content, for a host that wants to
// mirror it (e.g. the clipboard-yank hotkey in SPEC_FULL §4.10). The
// returned slice aliases internal storage and is only valid until the
// next ProcessByte call.
func (c *Controller) Line() []byte { return c.line.Bytes() }

// ProcessByte feeds one input byte into the session (spec §4.1). It
// returns a propagated Writer error; every other internal error kind is
// recovered locally per spec §7.
func (c *Controller) ProcessByte(b byte) error {
	ev, ok := c.dec.Feed(b)
	if !ok {
		return nil
	}
	switch ev.Kind {
	case EventPrintable:
		return c.handlePrintable(ev)
	case EventEnter:
		return c.handleEnter()
	case EventBackspace:
		return c.handleBackspace()
	case EventDelete:
		return c.handleDelete()
	case EventLeft:
		return c.handleLeft()
	case EventRight:
		return c.handleRight()
	case EventHome:
		return c.handleHome()
	case EventEnd:
		return c.handleEnd()
	case EventTab:
		return c.handleTab()
	case EventUp:
		return c.handleUp()
	case EventDown:
		return c.handleDown()
	default:
		// EventUnknown / unsupported CSI: ignore silently (spec §4.1).
		return nil
	}
}

// noteEdit drops a saved history draft when the user edits the line
// while mid-navigation (spec §4.5).
func (c *Controller) noteEdit() {
	if c.cfg.EnableHistory && c.hist != nil && c.hist.NavIndex() > 0 {
		c.hist.DropDraft()
	}
}

func (c *Controller) handlePrintable(ev Event) error {
	c.noteEdit()
	pos := c.line.Cursor()
	atEnd := pos == c.line.Len()
	b := ev.Bytes[:ev.N]

	if !c.line.InsertAt(pos, b) {
		return ringBell(c.w)
	}
	c.line.SetCursor(pos + ev.N)

	if atEnd {
		return writeAll(c.w, b)
	}
	if err := writeAll(c.w, b); err != nil {
		return err
	}
	return c.redrawTail()
}

func (c *Controller) handleBackspace() error {
	if c.line.Cursor() == 0 {
		return nil
	}
	c.noteEdit()
	before := c.line.Cursor()
	c.line.MoveCursorCodepoint(-1)
	start := c.line.Cursor()
	c.line.RemoveRange(start, before)

	if err := cursorLeft(c.w, 1); err != nil {
		return err
	}
	return c.redrawTail()
}

func (c *Controller) handleDelete() error {
	if c.line.Cursor() >= c.line.Len() {
		return nil
	}
	c.noteEdit()
	at := c.line.Cursor()
	c.line.MoveCursorCodepoint(1)
	end := c.line.Cursor()
	c.line.SetCursor(at)
	c.line.RemoveRange(at, end)
	return c.redrawTail()
}

func (c *Controller) handleLeft() error {
	if c.line.Cursor() == 0 {
		return nil
	}
	c.line.MoveCursorCodepoint(-1)
	return cursorLeft(c.w, 1)
}

func (c *Controller) handleRight() error {
	if c.line.Cursor() == c.line.Len() {
		return nil
	}
	c.line.MoveCursorCodepoint(1)
	return cursorRight(c.w, 1)
}

func (c *Controller) handleHome() error {
	n := countCodepoints(c.line.Bytes()[:c.line.Cursor()])
	if n == 0 {
		return nil
	}
	c.line.SetCursor(0)
	return cursorLeft(c.w, n)
}

func (c *Controller) handleEnd() error {
	n := countCodepoints(c.line.Bytes()[c.line.Cursor():])
	if n == 0 {
		return nil
	}
	c.line.SetCursor(c.line.Len())
	return cursorRight(c.w, n)
}

func (c *Controller) handleTab() error {
	if !c.cfg.EnableAutocomplete || c.cs == nil {
		return nil
	}
	tok, ok := LastTokenEndingAt(c.line.Bytes(), c.line.Cursor())
	if !ok || CountTokens(c.line.Bytes()[tok.End:]) != 0 {
		// Cursor not at the end of the last token: no-op (spec §4.6).
		return nil
	}

	need := tok.End - tok.Start
	partial := string(Unescape(c.line.Bytes(), tok, c.scratch[:need]))

	var src CandidateSource
	if tok.Start == 0 {
		src = c.cs.Names()
	} else {
		tokensSoFar := tokenizeStrings(c.line.Bytes(), tok.Start, false, c.scratch)
		src = c.cs.Complete(tokensSoFar)
	}

	res := MergeCompletions(partial, src)
	if !res.Found {
		return ringBell(c.w)
	}

	insertion := []byte(res.Best[len(partial):])
	if res.Unique {
		insertion = append(insertion, ' ')
	}

	if !c.line.InsertAt(c.line.Cursor(), insertion) {
		return ringBell(c.w)
	}
	c.line.SetCursor(c.line.Cursor() + len(insertion))
	return c.fullRedraw()
}

func (c *Controller) handleUp() error {
	if !c.cfg.EnableHistory || c.hist == nil {
		return nil
	}
	data, ok := c.hist.Up(c.line.Bytes())
	if !ok {
		return nil
	}
	if !c.line.ReplaceAll(data) {
		return nil
	}
	return c.fullRedraw()
}

func (c *Controller) handleDown() error {
	if !c.cfg.EnableHistory || c.hist == nil {
		return nil
	}
	data, _, ok := c.hist.Down()
	if !ok {
		return nil
	}
	if !c.line.ReplaceAll(data) {
		return nil
	}
	return c.fullRedraw()
}

func (c *Controller) handleEnter() error {
	raw := c.line.Bytes()
	empty := len(raw) == 0

	if err := writeStr(c.w, "\r\n"); err != nil {
		return err
	}

	if empty {
		c.line.Reset()
		return writeStr(c.w, c.prompt)
	}

	// Capture the original, still-escaped line before tokenizing
	// mutates it in place (safe here because the buffer resets right
	// after this event).
	rawCopy := c.scratch[:len(raw)]
	copy(rawCopy, raw)

	tokens := tokenizeStrings(c.line.Bytes(), -1, true, nil)

	if err := c.runCommand(tokens); err != nil {
		return err
	}

	if c.cfg.EnableHistory && c.hist != nil {
		c.hist.Submit(rawCopy)
	}
	if c.OnSubmit != nil {
		c.OnSubmit(rawCopy)
	}

	c.line.Reset()
	return writeStr(c.w, c.prompt)
}

// runCommand routes help forms before dispatch (spec §4.7). Errors of
// kind ErrUnknownCommand/ErrUnknownHelpTarget have already had their
// diagnostic written by RouteHelp and are swallowed here; any other
// non-nil error is a Writer failure and propagates unchanged.
func (c *Controller) runCommand(tokens []string) error {
	if c.cfg.EnableHelp {
		handled, herr := RouteHelp(c.w, c.cs, tokens)
		if handled {
			if herr != nil && !errors.Is(herr, ErrUnknownCommand) && !errors.Is(herr, ErrUnknownHelpTarget) {
				return herr
			}
			return nil
		}
	}
	if c.cs == nil {
		return nil
	}
	if derr := c.cs.Dispatch(tokens); derr != nil {
		return writeLinef(c.w, "error: %s", derr.Error())
	}
	return nil
}

// redrawTail writes the content from the cursor to the end of the line,
// erases anything stale after it, and repositions the terminal cursor
// back — the "minimum required ANSI sequences" update of spec §4.1, used
// by Printable/Backspace/Delete.
func (c *Controller) redrawTail() error {
	tail := c.line.Bytes()[c.line.Cursor():]
	if err := writeAll(c.w, tail); err != nil {
		return err
	}
	if err := eraseToLineEnd(c.w); err != nil {
		return err
	}
	return cursorLeft(c.w, countCodepoints(tail))
}

// fullRedraw repaints the entire prompt and line, used only for history
// recall and autocomplete insertion (spec §4.1).
func (c *Controller) fullRedraw() error {
	if err := writeStr(c.w, "\r"); err != nil {
		return err
	}
	if err := eraseToLineEnd(c.w); err != nil {
		return err
	}
	if err := writeStr(c.w, c.prompt); err != nil {
		return err
	}
	if err := writeAll(c.w, c.line.Bytes()); err != nil {
		return err
	}
	return cursorLeft(c.w, countCodepoints(c.line.Bytes()[c.line.Cursor():]))
}

func countCodepoints(b []byte) int {
	n := 0
	for _, x := range b {
		if isUTF8Lead(x) {
			n++
		}
	}
	return n
}
