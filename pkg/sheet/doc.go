// Package sheet implements a draggable bottom sheet that rests at one of
// several detents and shares its touch stream with one embedded scrollable.
//
// # Model
//
// Translation is the sheet's offset from fully extended: 0 shows the
// tallest detent, and the tallest extent hides the sheet. Each detent i
// rests at translation Tallest - Resolved[i].
//
// A [Sheet] wires four parts around a shared [OffsetState]:
//
//   - [ScrollCoordinator] tracks the scrollable's offset and native gesture,
//     and exposes whether its own scrolling is enabled.
//   - [PanRecognizer] decides per touch whether the sheet or the scrollable
//     owns the drag, moves the sheet, and picks a snap target on release
//     with [FindSnapTarget].
//   - [AnimationDriver] springs translation to a detent.
//   - [IndexChangeNotifier] posts index changes to the owner.
//
// # Contexts
//
// The render context feeds pointers, steps animation tickers and is the only
// writer of translation. The control context receives OnIndexChange. Setters
// such as [Sheet.SetIndex] hop to the render context through
// [Config].Render.
//
// # Usage
//
//	s, err := sheet.NewSheet(sheet.Config{
//	    Detents:         sheet.DetentSet{sheet.Pixels(0), sheet.Pixels(320), sheet.Fill()},
//	    Index:           1,
//	    ContainerExtent: 800,
//	    OnIndexChange:   func(i int) { log.Printf("index %d", i) },
//	})
//	if err != nil {
//	    return err
//	}
//	detach := s.Scroll().Attach(list, nil)
//	defer detach()
//
//	// per pointer event
//	s.HandlePointer(ev)
//	// per frame
//	animation.StepTickers()
package sheet
