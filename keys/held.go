package keys

// heldKeys turns a stream of key-down/key-up events into presses: a key
// counts once when it goes down and not again until it is released, so
// autorepeat is ignored.
type heldKeys map[uint16]bool

// down reports whether code was up before this event.
func (h heldKeys) down(code uint16) bool {
	if h[code] {
		return false
	}
	h[code] = true
	return true
}

func (h heldKeys) up(code uint16) {
	delete(h, code)
}
