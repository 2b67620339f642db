package main

import (
	"densebit/cli"
)

func main() {
	cli.Start()
}
