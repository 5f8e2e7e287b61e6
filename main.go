// Package main is the entry point for the cfbmetrics CLI tool, which
// classifies college football play-by-play data and computes situational
// team metrics.
package main

import "github.com/gridstats/go-cfb-metrics/cmd"

func main() {
	cmd.Execute()
}
