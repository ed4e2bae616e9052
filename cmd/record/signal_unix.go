//go:build !windows

package record

import (
	"os"
	"os/signal"
	"syscall"
)

// notifySaveSignal wires SIGUSR1 to the save trigger so a clip can be
// exported from a script without touching stdin.
func notifySaveSignal(saveChan chan<- struct{}) {
	usrChan := make(chan os.Signal, 1)
	signal.Notify(usrChan, syscall.SIGUSR1)
	go func() {
		for range usrChan {
			select {
			case saveChan <- struct{}{}:
			default:
			}
		}
	}()
}
