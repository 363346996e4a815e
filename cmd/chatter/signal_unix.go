//go:build unix

package main

import (
	"os"
	"os/signal"
	"syscall"
)

func init() {
	notifyExtraSignals = func(sigChan chan<- os.Signal) {
		signal.Notify(sigChan, syscall.SIGTSTP)
	}

	shutdownMessage = func(sig os.Signal) string {
		if sig == syscall.SIGTSTP {
			return "Received suspend signal (Ctrl+Z), shutting down gracefully..."
		}
		return "Received interrupt signal, shutting down..."
	}
}
