package main

import "github.com/tinygo-tools/targetctl/internal/cli"

func main() {
	cli.Execute()
}
