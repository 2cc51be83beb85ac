package gestures

// NativeGesture mirrors the built-in pan of a scrollable view. The host calls
// Begin when the scrollable's own recognizer starts tracking a touch and
// Finalize when that touch ends for any reason. It runs simultaneously with a
// PanGesture on the same pointer.
type NativeGesture struct {
	OnStart    func()
	OnFinalize func()

	active bool
}

// Begin marks the native gesture active.
func (n *NativeGesture) Begin() {
	if n.active {
		return
	}
	n.active = true
	if n.OnStart != nil {
		n.OnStart()
	}
}

// Finalize marks the native gesture inactive.
func (n *NativeGesture) Finalize() {
	if !n.active {
		return
	}
	n.active = false
	if n.OnFinalize != nil {
		n.OnFinalize()
	}
}

// Active reports whether the native gesture is tracking a touch.
func (n *NativeGesture) Active() bool {
	return n.active
}
