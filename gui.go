package main

import (
	"image"
	"image/draw"
	"log"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/kd/vip8/chip8"
)

type gui struct {
	r *Runner

	update     chan *chip8.Machine
	updateDone chan bool

	fb    *image.RGBA // copy of the machine framebuffer
	dirty bool
	buf   screen.Buffer
	tex   screen.Texture
}

func newGUI(r *Runner) *gui {
	return &gui{
		r:          r,
		update:     make(chan *chip8.Machine),
		updateDone: make(chan bool),
	}
}

// offer hands the machine to the window for one frame copy. If the window is
// busy the frame is dropped; the runner never blocks on presentation.
func (g *gui) offer(m *chip8.Machine) {
	select {
	case g.update <- m:
		<-g.updateDone
	default:
	}
}

func (g *gui) Run(done <-chan struct{}) error {
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{Title: "vip8"})
		if err != nil {
			log.Fatal(err)
		}
		defer w.Release()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / 60)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-done:
					w.Send(update{})
					return
				}
			}
		}()

		defer g.release()

		var sz size.Event
		for {
			e := w.NextEvent()

			select {
			case <-done:
				return
			default:
			}

			switch e := e.(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case key.Event:
				if e.Rune < 0 {
					break
				}
				if e.Direction != key.DirPress && e.Direction != key.DirRelease {
					break
				}
				ev := keyEvent{
					r:    unicode.ToLower(e.Rune),
					down: e.Direction == key.DirPress,
				}
				select {
				case g.r.keys <- ev:
				default:
					// Runner is saturated; drop the edge.
				}

			case update:
				select {
				case m := <-g.update:
					g.copyFrame(m)
					g.updateDone <- true
				default:
					// Machine is mid-frame.
				}
				if g.dirty {
					if err := g.present(s, w, sz); err != nil {
						log.Fatalf("present: %v", err)
					}
					g.dirty = false
				}

			case paint.Event:

			case error:
				log.Print(e)
			}
		}
	})
	return nil
}

// copyFrame snapshots the machine framebuffer. This is the only safe time to
// read it; at all other times the runner goroutine may be drawing.
func (g *gui) copyFrame(m *chip8.Machine) {
	src := m.Framebuffer()
	if g.fb == nil || g.fb.Bounds() != src.Bounds() {
		g.fb = image.NewRGBA(src.Bounds())
	}
	copy(g.fb.Pix, src.Pix)
	g.dirty = true
}

func (g *gui) present(s screen.Screen, w screen.Window, sz size.Event) error {
	winSize := image.Point{sz.WidthPx, sz.HeightPx}
	if winSize.X == 0 || winSize.Y == 0 {
		winSize = g.fb.Bounds().Size()
	}
	if g.buf == nil || g.buf.Size() != winSize {
		g.release()
		var err error
		if g.buf, err = s.NewBuffer(winSize); err != nil {
			return err
		}
		if g.tex, err = s.NewTexture(winSize); err != nil {
			return err
		}
	}
	// Nearest-neighbour keeps the logical pixels crisp at any window size.
	xdraw.NearestNeighbor.Scale(g.buf.RGBA(), g.buf.RGBA().Bounds(), g.fb, g.fb.Bounds(), draw.Src, nil)
	g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
	w.Copy(image.Point{}, g.tex, g.tex.Bounds(), draw.Src, nil)
	w.Publish()
	return nil
}

func (g *gui) release() {
	if g.tex != nil {
		g.tex.Release()
		g.tex = nil
	}
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
	}
}
