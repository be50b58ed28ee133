// Package clock provides a tiny time abstraction.
//
// Production code should depend on the Clocker interface instead of calling
// time.Now() directly, so tests can swap in a fake clock that returns a
// deterministic time. One-time codes live and die by the clock.
package clock
