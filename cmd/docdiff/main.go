// Package main is the entrypoint of the docdiff CLI.
package main

import (
	"github.com/huangsam/docdiff/cmd"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("docdiff failed", err)
	}
}
