package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"wavecast-server-go/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to WAVECAST_CONFIG or ./config.yaml)")
	flag.Parse()

	if err := bootstrap.Run(context.Background(), *configPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "wavecast-server failed: %v\n", err)
		os.Exit(1)
	}
}
