package main

import "makedoc2rst/internal/cli"

func main() {
	cli.Execute()
}
