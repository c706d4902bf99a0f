package main

import "github.com/mcoot/snakescore/internal/cli"

func main() {
	cli.Execute()
}
