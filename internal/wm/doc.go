// Package wm is the window manager proper: it claims substructure
// redirect on the root window, models clients and monitors, and runs
// the single-goroutine event dispatch loop that every other package
// feeds into.
//
// All window management state is owned by the goroutine running
// (*WM).Run. Work originating elsewhere, such as configuration
// reloads, crosses into it through a channel of closures.
package wm
