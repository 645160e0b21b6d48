package main

import (
	"os"

	"pkt.systems/rawfmt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
