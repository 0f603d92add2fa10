package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/courier-levels/internal/levelserver"
	"github.com/vovakirdan/courier-levels/internal/llm"
)

var flagAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP level generation server",
	Long: `Start the HTTP server the game asks for AI levels.

Endpoints:
  POST /generate-level  {"prompt": "..."} -> {"success": true, "level": "..."}
  GET  /quick-level     ?tier=easy|medium|hard -> procedural level JSON

The LLM backend, model and API key come from the llm section of the
config. The API key is read from the environment variable named by
llm.api_key_env (GROQ_API_KEY by default).

Examples:
  levelgen server
  levelgen server --addr :8080`,
	Run: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, :3002)")
}

func runServer(_ *cobra.Command, _ []string) {
	a := loadApp()

	completer, err := llm.FromConfig(a.cfg.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s backend: %v\n", a.cfg.LLM.Backend, err)
		os.Exit(1)
	}

	addr := a.cfg.Server.Address
	if flagAddr != "" {
		addr = flagAddr
	}

	srv, err := levelserver.New(levelserver.Options{
		Generator:   llm.NewGenerator(completer),
		Quick:       a.newService(nil, nil),
		AllowOrigin: a.cfg.Server.AllowOrigin,
		Logger:      a.logger.WithPrefix("levelserver"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Level server running at %s\n", levelserver.URL(addr))
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
