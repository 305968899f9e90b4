// youtrack-mcp serves the YouTrack issue tools to an MCP host over stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/effective-security/xlog"
	"github.com/effective-security/youtrack-mcp/mcpserver"
	"github.com/effective-security/youtrack-mcp/pkg/ytclient"
	"github.com/effective-security/youtrack-mcp/tools/issues"
	"github.com/joho/godotenv"
)

const serverName = "youtrack-mcp"

// version is set at build time with -ldflags.
var version = "dev"

var logger = xlog.NewPackageLogger("github.com/effective-security/youtrack-mcp", "main")

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serverName, err)
		os.Exit(1)
	}
}

func realMain() error {
	var (
		cfgFile  = flag.String("cfg", "", "path to the YAML configuration file")
		logLevel = flag.String("log-level", "ERROR", "log level: DEBUG, INFO, WARNING, ERROR")
	)
	flag.Parse()

	// stdout carries the MCP transport; all logging goes to stderr
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	level, err := xlog.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	xlog.SetGlobalLogLevel(level)

	// .env is optional; environment wins over the config file either way
	_ = godotenv.Load()

	cfg, err := ytclient.LoadConfig(*cfgFile)
	if err != nil {
		return err
	}

	client, err := ytclient.New(cfg)
	if err != nil {
		return err
	}

	provider := issues.NewProvider(client)
	defer provider.Close()

	srv := mcpserver.New(serverName, version)
	srv.RegisterTools(provider.Tools()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.KV(xlog.INFO,
		"status", "serving",
		"version", version,
	)
	return srv.Serve(ctx, os.Stdin, os.Stdout)
}
