package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/soar/padoverlay/internal/config"
	"github.com/soar/padoverlay/internal/console"
	"github.com/soar/padoverlay/internal/gamepad"
	"github.com/soar/padoverlay/internal/hub"
	"github.com/soar/padoverlay/internal/input"
	"github.com/soar/padoverlay/internal/interpreter"
	"github.com/soar/padoverlay/internal/profile"
	"github.com/soar/padoverlay/internal/server"
	"github.com/soar/padoverlay/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	inConsole := console.IsRunningFromConsole()

	settings, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	store, err := profile.Load(settings.Profiles, settings.Profile)
	if err != nil {
		var nf *profile.NotFoundError
		if errors.As(err, &nf) {
			log.Fatalf("Profile %q not found. Available profiles: %s", nf.Name, strings.Join(nf.Available, ", "))
		}
		log.Fatalf("Failed to load profiles: %v", err)
	}
	log.Printf("Profile %s maps families %v", store.Active().Name, store.Active().Families())
	if settings.Layout != input.FamilyUnknown {
		log.Printf("Forcing layout %s for every controller", settings.Layout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Channel for tray- or console-triggered shutdown
	shutdownRequested := make(chan struct{})
	requestShutdown := sync.OnceFunc(func() { close(shutdownRequested) })
	reregisterConsole := console.SetupConsoleHandler(requestShutdown)

	// Create and start hub
	h := hub.NewHub()
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go h.Run(hubCtx)

	// The interpreter loop is the only consumer of the event queue
	queue := input.NewQueue(settings.QueueSize)
	interp := interpreter.New(store.Active(), hub.NewOverlay(h), interpreter.Options{
		AxisThreshold: settings.AxisThreshold,
		AxisInterval:  settings.AxisInterval,
		ForcedFamily:  settings.Layout,
		Verbose:       settings.Verbose,
	})
	interpDone := make(chan struct{})
	go func() {
		interp.Run(queue.Events())
		close(interpDone)
	}()

	// Create and start HTTP server
	files, err := overlayFiles()
	if err != nil {
		log.Fatalf("Failed to open overlay page: %v", err)
	}
	srv, err := server.New(h, files, settings.Addr)
	if err != nil {
		log.Fatalf("Failed to prepare overlay page: %v", err)
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	url := overlayURL(settings.Addr)
	log.Printf("PadOverlay started with profile %s: %s", store.Active().Name, url)

	var t *tray.Tray
	if settings.Tray || !inConsole {
		t = tray.New(url, requestShutdown)
		go t.Run(tray.GetIcon())
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// Reader runs on its own locked OS thread; cancelling ctx stops it
	reader := gamepad.NewReader(queue, settings.Verbose)
	reader.AfterInit(reregisterConsole)
	readerErrCh := make(chan error, 1)
	go func() {
		readerErrCh <- reader.Run(ctx)
	}()

	// Wait for shutdown signal, tray request, or a component failure
	readerStopped := false
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested")
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
	case err := <-readerErrCh:
		readerStopped = true
		log.Printf("Input reader stopped: %v", err)
	}
	cancel()

	// No event is pushed once the reader has returned
	if !readerStopped {
		if err := <-readerErrCh; err != nil {
			log.Printf("Input reader error: %v", err)
		}
	}
	queue.Close()
	<-interpDone
	if n := queue.Dropped(); n > 0 {
		log.Printf("Dropped %d input events while the overlay was busy", n)
	}

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	stopHub()
	if t != nil {
		t.Quit()
	}

	log.Println("PadOverlay stopped")
}

// overlayURL turns a listen address into a URL a local browser can open.
func overlayURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
