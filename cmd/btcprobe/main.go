package main

import "github.com/vietddude/btcprobe/internal/cli"

func main() {
	cli.Execute()
}
