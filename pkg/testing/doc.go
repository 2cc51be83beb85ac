// Package testing provides a headless harness for bottom sheet tests.
//
// # Quick Start
//
// Create a tester, hand its control executor to the sheet, and drive
// pointers against it:
//
//	func TestFlingCloses(t *testing.T) {
//	    tester := sheettest.NewTesterWithT(t)
//	    s, err := sheet.NewSheet(sheet.Config{
//	        Detents:         sheet.DetentSet{sheet.Pixels(0), sheet.Pixels(400)},
//	        Index:           1,
//	        ContainerExtent: 800,
//	        Control:         tester.Control(),
//	    })
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    tester.SetTarget(s)
//	    tester.PumpAndSettle(time.Second)
//
//	    tester.Fling(geometry.Offset{X: 100, Y: 500}, geometry.Offset{Y: 120}, 3000)
//	    tester.PumpAndSettle(time.Second)
//
//	    if s.Index() != 0 {
//	        t.Errorf("expected index 0, got %d", s.Index())
//	    }
//	}
//
// # Animation Testing
//
// The tester installs a [FakeClock] as the animation clock. Each Pump runs
// pending control callbacks and steps animation tickers once:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Scrollables
//
// [FakeScrollable] records ScrollTo calls and reports fixed bounds, standing
// in for a real list attached to a sheet.
package testing
