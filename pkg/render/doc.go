// Package render draws heatmaps into images.
//
// # Overview
//
// Two renderers share one frame layout (title, plot area, axes, colour bar):
//
//   - [DrawGrid] paints a histogram grid cell by cell with a sequential
//     colour map.
//   - [DrawKDE] paints a background image at full opacity and overlays the
//     density as filled, semi-transparent contour bands.
//
// Both place the grid's row 0 at the top of the plot, matching image pixel
// coordinates: the y axis grows downward.
//
//	img, err := render.DrawKDE(grid, background, render.Options{
//	    Title:  "Detected Heatmap",
//	    XLabel: "X",
//	    YLabel: "Y",
//	    Width:  960,
//	    Height: 720,
//	    Alpha:  0.3,
//	    Levels: 8,
//	})
//	data, err := render.EncodePNG(img)
//
// Drawing uses github.com/fogleman/gg; backgrounds are decoded and resized
// with github.com/disintegration/imaging.
package render
