// Package main is the entry point for the gittracker CLI.
package main

import (
	"github.com/Rohit-Singh-01/git-tracker/cmd"
	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Failed to stop profiling", err)
	}
}
