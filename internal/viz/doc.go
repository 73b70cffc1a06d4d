// Package viz renders forward models and their fields for the terminal.
//
//   - [Canvas]: Braille pixel canvas with a world-to-screen [Viewport]
//   - [DrawPlan]: body outlines projected onto a coordinate plane
//   - [Render3D]: perspective wireframe of rotated bodies
//   - [ProfilePlot] and [SparklineChart]: line plots of sampled fields
//   - [MetricsTable]: per-component metric summaries
//
// Colours follow the active [Theme]; call [SetTheme] before rendering.
package viz
