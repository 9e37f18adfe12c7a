// Package viz is the terminal front-end of the orb.
//
// A [Model] drives an orb controller from bubbletea: mouse motion and left
// button presses become pointer events, a tick at the configured frame rate
// advances the controller, and the resulting [Sink] state is drawn as a
// filled braille ellipse on a [Canvas]. The orb color is blended onto the
// theme background by its opacity, and the stats panel border follows the
// orb's theme hue.
//
// # Key Bindings
//
//	t - Cycle color themes
//	? - Toggle help
//	q - Save the position and quit
//
// [Picker] wraps a Model behind a preset menu.
package viz
