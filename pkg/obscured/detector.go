package obscured

import "sync"

// DefaultDetector is used by any String not bound to another Detector.
var DefaultDetector = NewDetector()

// Detector reports edits to screened values made outside of this package, e.g. with a memory editor.
// After reporting once, a Detector stops and forgets its subscribers.
type Detector struct {
	mux         sync.Mutex
	running     bool
	subscribers []func()
}

func NewDetector() *Detector {
	return &Detector{}
}

// Start begins detection, adding any given callbacks as subscribers.
// Only values assigned while detection runs keep a shadow to compare against.
func (d *Detector) Start(callbacks ...func()) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.running = true
	d.addSubscribers(callbacks)
}

func (d *Detector) Stop() {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.running = false
}

func (d *Detector) Running() bool {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.running
}

// Subscribe adds a callback to be notified when an edit is detected.
func (d *Detector) Subscribe(fn func()) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.addSubscribers([]func(){fn})
}

func (d *Detector) addSubscribers(fns []func()) {
	for _, fn := range fns {
		if fn != nil {
			d.subscribers = append(d.subscribers, fn)
		}
	}
}

func (d *Detector) report() {
	d.mux.Lock()
	if !d.running {
		d.mux.Unlock()
		return
	}
	subscribers := d.subscribers
	d.subscribers = nil
	d.running = false
	d.mux.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
