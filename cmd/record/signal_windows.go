//go:build windows

package record

// notifySaveSignal is a no-op on Windows, which has no SIGUSR1; the stdin
// trigger still works.
func notifySaveSignal(chan<- struct{}) {}
