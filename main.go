package main

import "github.com/autocliper/autoclip/internal/cli"

func main() {
	cli.Main()
}
