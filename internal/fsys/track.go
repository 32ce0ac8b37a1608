package fsys

// Tracker records every path its inner adapter wrote successfully, in
// write order. A failed write is not recorded.
type Tracker struct {
	Adapter
	written []string
}

// Track wraps inner.
func Track(inner Adapter) *Tracker {
	return &Tracker{Adapter: inner}
}

func (t *Tracker) Write(p, content string) error {
	if err := t.Adapter.Write(p, content); err != nil {
		return err
	}
	t.written = append(t.written, p)
	return nil
}

// Written returns a copy of the recorded paths.
func (t *Tracker) Written() []string {
	out := make([]string, len(t.written))
	copy(out, t.written)
	return out
}
