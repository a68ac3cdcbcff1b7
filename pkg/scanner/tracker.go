package scanner

// EventType identifies a block boundary event
type EventType string

const (
	EventOpen      EventType = "OPEN"
	EventAttribute EventType = "ATTRIBUTE"
	EventClose     EventType = "CLOSE"
)

// Event is emitted by the BlockTracker as lines are fed to it
type Event struct {
	Type      EventType
	Line      int
	Header    BlockHeader
	Attribute string
}

// BlockTracker follows one block at a time using a block-local brace
// counter. The counter starts at the header line's net brace delta and the
// block closes when it returns to zero. Blank and comment lines are ignored.
//
// Only a single running counter is kept: a labeled header inside an open
// block closes the current block and opens the new one, and attributes of
// unlabeled sub-blocks are attributed to the enclosing block.
type BlockTracker struct {
	open   bool
	header BlockHeader
	start  int
	depth  int
}

// NewBlockTracker creates an idle tracker
func NewBlockTracker() *BlockTracker {
	return &BlockTracker{}
}

// Open reports whether a block is currently being tracked
func (t *BlockTracker) Open() bool {
	return t.open
}

// Depth is the current block-local brace counter
func (t *BlockTracker) Depth() int {
	return t.depth
}

// Feed advances the tracker by one line and returns the events it produced
func (t *BlockTracker) Feed(line Line) []Event {
	if line.Kind == KindBlank || line.Kind == KindComment {
		return nil
	}

	var events []Event

	if line.Kind == KindBlockHeader {
		if t.open {
			events = append(events, t.close(line.Number))
		}
		t.open = true
		t.header = line.Header
		t.start = line.Number
		t.depth = line.Delta()
		events = append(events, Event{Type: EventOpen, Line: line.Number, Header: line.Header})
		if t.depth <= 0 {
			events = append(events, t.close(line.Number))
		}
		return events
	}

	if !t.open {
		return nil
	}

	if line.Kind == KindAttribute {
		events = append(events, Event{
			Type:      EventAttribute,
			Line:      line.Number,
			Header:    t.header,
			Attribute: line.Attribute,
		})
	}

	t.depth += line.Delta()
	if t.depth <= 0 {
		events = append(events, t.close(line.Number))
	}

	return events
}

// Finish closes a block left open at end of input
func (t *BlockTracker) Finish(last Line) []Event {
	if !t.open {
		return nil
	}
	return []Event{t.close(last.Number)}
}

func (t *BlockTracker) close(line int) Event {
	ev := Event{Type: EventClose, Line: line, Header: t.header}
	t.open = false
	t.header = BlockHeader{}
	t.depth = 0
	return ev
}
