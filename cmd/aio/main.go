package main

import (
	"github.com/bricsin4u/AIO-research/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
