// Package main provides the entry point for the beatmapctl command line tool.
package main

import "github.com/listenupapp/beatmap-server/internal/cli"

func main() {
	cli.Execute()
}
