// Package browser models the window-level capabilities a page script
// consumes: scroll position and smooth scrolling, location and navigation,
// performance timing, intersection observation, and feature detection.
//
// There is no layout engine. Scroll requests are recorded rather than
// animated, ScrollTo moves the scroll offset immediately, and elements
// become "visible" only when Intersect is called for them. This is enough
// to drive and observe page behavior headlessly.
package browser
