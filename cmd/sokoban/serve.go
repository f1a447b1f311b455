package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/t-kuester/sokoban/internal/platform/tui"
)

var (
	flagSSHHost    string
	flagSSHPort    int
	flagSSHHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play in their own
terminal. Each connection gets its own session; progress is stored
per-server (all users share one database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at the configured path

Examples:
  sokoban serve
  sokoban serve --port 2222
  sokoban serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHHost, "host", "", "Listen host (default from config)")
	serveCmd.Flags().IntVar(&flagSSHPort, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().StringVar(&flagSSHHostKey, "host-key", "", "Path to host key file")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagSSHHost != "" {
		cfg.SSH.Host = flagSSHHost
	}
	if flagSSHPort != 0 {
		cfg.SSH.Port = flagSSHPort
	}
	if flagSSHHostKey != "" {
		cfg.SSH.HostKeyPath = flagSSHHostKey
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Sokoban SSH server on %s:%d\n", cfg.SSH.Host, cfg.SSH.Port)
	fmt.Printf("Connect with: ssh localhost -p %d\n", cfg.SSH.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
