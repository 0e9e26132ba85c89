package tui

// page tracks a cursor over n items and the window of pageSize items shown.
type page struct {
	n, size        int
	cursor, offset int
}

func newPage(n, size int) page {
	if size < 1 {
		size = 1
	}
	return page{n: n, size: size}
}

// move shifts the cursor by d, wrapping around the ends.
func (p *page) move(d int) {
	if p.n == 0 {
		return
	}
	p.cursor = ((p.cursor+d)%p.n + p.n) % p.n
	p.scroll()
}

// jump shifts the cursor by d, stopping at the ends.
func (p *page) jump(d int) {
	if p.n == 0 {
		return
	}
	p.cursor = min(max(p.cursor+d, 0), p.n-1)
	p.scroll()
}

func (p *page) scroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.size {
		p.offset = p.cursor - p.size + 1
	}
}

// visible returns the half-open range of item indexes on screen.
func (p page) visible() (int, int) {
	return p.offset, min(p.offset+p.size, p.n)
}
