package machine

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome 64x32 display, stored row-major.
type Framebuffer [Height][Width]bool

// Pixel returns whether the pixel at the wrapped coordinate is set.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[wrap(y, Height)][wrap(x, Width)]
}

// Toggle XORs the pixel at the wrapped coordinate and returns true if the
// pixel was switched off by it.
func (f *Framebuffer) Toggle(x, y int) bool {
	row, col := wrap(y, Height), wrap(x, Width)
	erased := f[row][col]
	f[row][col] = !erased
	return erased
}

// Clear switches all pixels off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Count returns the number of pixels that are set.
func (f *Framebuffer) Count() int {
	n := 0
	for _, row := range f {
		for _, set := range row {
			if set {
				n++
			}
		}
	}
	return n
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// Framebuffer returns a copy of the current display content.
func (m *Machine) Framebuffer() Framebuffer {
	return m.framebuffer
}

// Display returns the display for mutation by the interpreter.
// Every mutation has to be followed by MarkRedraw.
func (m *Machine) Display() *Framebuffer {
	return &m.framebuffer
}

// MarkRedraw flags the display as changed.
func (m *Machine) MarkRedraw() {
	m.redraw = true
}

// NeedsRedraw returns whether the display changed since it was last presented.
func (m *Machine) NeedsRedraw() bool {
	return m.redraw
}

// TakeRedraw returns whether the display changed since it was last presented
// and clears the flag.
func (m *Machine) TakeRedraw() bool {
	redraw := m.redraw
	m.redraw = false
	return redraw
}
