package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/courier-levels/internal/platform/tui"
	"github.com/vovakirdan/courier-levels/internal/synth"
)

var (
	flagStudioDirect bool
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Start the interactive level studio",
	Long: `Start the level studio in this terminal.

Pick a difficulty for a quick procedural level, or describe the level you
want and let the AI level designer build it. Every level is previewed
with a minimap and stored in the history.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Select / generate
  Tab          - Level history
  Esc/B        - Back
  Q            - Quit

Examples:
  levelgen studio
  levelgen studio --direct`,
	Run: runStudio,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the level studio over SSH",
	Long: `Start an SSH server that gives every connection its own level studio.

All sessions share the level history and the generation backend; each
session has its own current level and in-flight request.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.levelgen/host_key

Examples:
  levelgen serve                           # Listen on :23235 with auto-generated key
  levelgen serve --ssh :2222               # Listen on port 2222
  levelgen serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	studioCmd.Flags().BoolVar(&flagStudioDirect, "direct", false, "Call the LLM backend directly instead of the level server")

	serveCmd.Flags().BoolVar(&flagStudioDirect, "direct", false, "Call the LLM backend directly instead of the level server")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23235)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

// studioClient returns the generation client for studio sessions, or nil
// when no backend is available.
func (a *app) studioClient() synth.GenerationService {
	client, err := a.generationClient(flagStudioDirect)
	if err != nil {
		a.logger.Warn("no generation backend, prompts will use procedural levels", "error", err)
		return nil
	}
	return client
}

func runStudio(_ *cobra.Command, _ []string) {
	a := loadApp()
	store := a.tryOpenStore()
	if store != nil {
		defer store.Close()
	}

	// The studio owns the terminal; keep logs off it.
	a.logger.SetOutput(io.Discard)

	events := tui.NewChannelObserver(16)
	svc := a.newService(a.studioClient(), store, events)

	width, height := terminalSize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := tui.RunStudio(ctx, tui.StudioOptions{
		Service: svc,
		Events:  events,
		Store:   store,
		Width:   width,
		Height:  height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) {
	a := loadApp()
	store := a.tryOpenStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHConfigFrom(a.cfg.SSH)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	client := a.studioClient()
	newService := func(observer synth.Observer) *synth.Service {
		return a.newService(client, store, observer)
	}

	server, err := tui.NewSSHServer(cfg, newService, store, a.logger.WithPrefix("levelgen-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting level studio SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port of a listen address such as ":23235".
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
