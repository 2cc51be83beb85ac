package sheet

import "github.com/go-drift/bottomsheet/pkg/dispatch"

// Config configures a Sheet.
type Config struct {
	// Detents is the ordered set of resting extents. It must not be empty.
	Detents DetentSet
	// Index is the initial detent index, clamped into range.
	Index int
	// OnIndexChange runs on the Control executor when a gesture or scrim
	// press moves the sheet to a new index.
	OnIndexChange func(index int)

	// OpenSpring and CloseSpring tune the settle animation. Zero values use
	// DefaultOpenSpring and DefaultCloseSpring.
	OpenSpring  SpringConfig
	CloseSpring SpringConfig

	// OnPosition receives the visible extent, tallest detent minus
	// translation, after every translation write on the render context.
	OnPosition func(extent float64)
	// OnScrimProgress receives the visible extent as a fraction of the first
	// nonzero detent, clamped to [0, 1], alongside OnPosition.
	OnScrimProgress func(progress float64)
	// Modal sheets capture pointers outside the sheet and dismiss on scrim
	// press.
	Modal bool

	// ContainerExtent is the available vertical space. ContentExtent is the
	// measured content height, or 0 when unknown.
	ContainerExtent float64
	ContentExtent   float64

	// Measurer reports scrollable bounds when the attached scrollable does
	// not measure itself.
	Measurer LayoutMeasurer
	// Trace, if set, records gesture and animation events.
	Trace *TraceBuffer

	// Control runs OnIndexChange. Defaults to dispatch.Default().
	Control dispatch.Executor
	// Render runs control-side setters on the render context. Defaults to
	// dispatch.Inline, for hosts that call the sheet from one goroutine.
	Render dispatch.Executor
}

func (c Config) withDefaults() Config {
	if c.Control == nil {
		c.Control = dispatch.Default()
	}
	if c.Render == nil {
		c.Render = dispatch.Inline
	}
	c.Detents = append(DetentSet(nil), c.Detents...)
	return c
}
