package main

import (
	"os"

	"github.com/ironsheep/text-scanner/cmd/text-scanner/cmd"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	info := cmd.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	if err := cmd.NewRootCommand(info).Execute(); err != nil {
		os.Exit(1)
	}
}
