package main

import "freight-calc/internal/cli"

func main() {
	cli.Execute()
}
