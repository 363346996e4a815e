package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaibhav-y/chatter/internal/config"
	"github.com/vaibhav-y/chatter/internal/delivery"
	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/gateway"
)

// Overridable per-platform signal hooks; see signal_unix.go.
var (
	notifyExtraSignals = func(sigChan chan<- os.Signal) {}
	shutdownMessage    = func(sig os.Signal) string {
		return "Received interrupt signal, shutting down..."
	}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatter",
		Short: "Chatter - in-memory microblogging data engine",
		Long: `A standalone HTTP server backed by an in-memory social-graph data engine.

Chatter provides:
  - Users, tweets, retweets, and follow relationships
  - Denormalized mention, hashtag, and timeline indices
  - Fan-out of new tweets to followers and mentioned users
  - Server-Sent Events (SSE) notification streaming
  - Prometheus metrics and YAML configuration`,
	}

	rootCmd.AddCommand(createStartCmd())
	rootCmd.AddCommand(createStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func createStartCmd() *cobra.Command {
	var port int
	var host string
	var configPath string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the chatter API server",
		Long: `Start the HTTP server backed by a fresh in-memory engine.
The server runs until interrupted (Ctrl+C). All state is lost on exit.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					color.Red("❌ Failed to load config %s: %v", configPath, err)
					os.Exit(1)
				}
				cfg = loaded
			}
			cfg.ResolveEnv()
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}

			hub := delivery.NewHub(cfg.Delivery.Buffer)
			eng := engine.New(hub)
			server := gateway.NewServer(cfg, eng, hub)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			notifyExtraSignals(sigChan)

			errChan := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					errChan <- err
				}
			}()

			color.Green("✅ Chatter server listening on %s", server.URL())

			select {
			case sig := <-sigChan:
				color.Yellow("\n🛑 %s", shutdownMessage(sig))
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()

				if err := server.Stop(shutdownCtx); err != nil {
					color.Red("Error shutting down server: %v", err)
					os.Exit(1)
				}
				color.Green("✅ Chatter server stopped gracefully")
			case err := <-errChan:
				color.Red("❌ Server error: %v", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the server on")
	cmd.Flags().StringVar(&host, "host", "localhost", "Host to bind the server to")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	return cmd
}

func createStatusCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check chatter server status",
		Long:  "Check whether a chatter server is running and display its state summary",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", port))
			if err != nil {
				color.Red("❌ No chatter server found on port %d", port)
				os.Exit(1)
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				color.Green("✅ Chatter server is running on port %d", port)
				return
			}
			color.Red("❌ Chatter server on port %d is unhealthy (status %d)", port, resp.StatusCode)
			os.Exit(1)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to probe")
	return cmd
}
