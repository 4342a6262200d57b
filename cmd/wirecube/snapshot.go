package main

import (
	"fmt"

	"github.com/taigrr/wirecube/pkg/render"
	"github.com/taigrr/wirecube/pkg/scene"
)

// renderSnapshot draws a single supersampled frame and writes it to the
// -snapshot path.
func renderSnapshot(sc *scene.Scene, pal scene.Palette, fps int) error {
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", *width, *height)
	}
	if _, err := render.FormatFromPath(*snapshot); err != nil {
		return err
	}
	ss := max(*supersample, 1)

	frames := int(*animate * float64(fps))
	for range frames {
		sc.Update(1 / float64(fps))
	}

	fb := render.NewFramebuffer(*width*ss, *height*ss)
	wf := render.NewWireframe(fb)
	if err := sc.Draw(wf, pal); err != nil {
		return err
	}

	img := render.Downsample(fb.ToImage(), *width, *height)
	if err := render.SaveImage(*snapshot, img); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
