package orb

// Trail is a fixed-capacity FIFO of pointer samples. Once full, each push
// evicts the oldest sample.
type Trail struct {
	data []Vec2
	pos  int
	full bool
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{data: make([]Vec2, capacity)}
}

func (t *Trail) Push(p Vec2) {
	t.data[t.pos] = p
	t.pos++
	if t.pos >= len(t.data) {
		t.pos = 0
		t.full = true
	}
}

func (t *Trail) Len() int {
	if t.full {
		return len(t.data)
	}
	return t.pos
}

func (t *Trail) Cap() int { return len(t.data) }

// at returns the i-th sample in arrival order, 0 being the oldest.
func (t *Trail) at(i int) Vec2 {
	if t.full {
		return t.data[(t.pos+i)%len(t.data)]
	}
	return t.data[i]
}

// Lagged returns the sample n positions behind the newest one. With fewer
// than n+1 samples it returns the oldest; with none it returns fallback.
func (t *Trail) Lagged(n int, fallback Vec2) Vec2 {
	size := t.Len()
	if size == 0 {
		return fallback
	}
	if n < 0 {
		n = 0
	}
	if size > n {
		return t.at(size - 1 - n)
	}
	return t.at(0)
}

// Samples returns a copy of the buffer in arrival order.
func (t *Trail) Samples() []Vec2 {
	n := t.Len()
	out := make([]Vec2, n)
	if t.full {
		copy(out, t.data[t.pos:])
		copy(out[len(t.data)-t.pos:], t.data[:t.pos])
	} else {
		copy(out, t.data[:t.pos])
	}
	return out
}

func (t *Trail) Reset() {
	t.pos = 0
	t.full = false
}
