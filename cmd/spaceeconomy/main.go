package main

import "github.com/andrescamacho/spaceeconomy-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
