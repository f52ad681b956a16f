package main

import "wembleycal/internal/cli"

func main() {
	cli.Execute()
}
