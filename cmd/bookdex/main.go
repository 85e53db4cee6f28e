package main

import "bookdex/internal/cli"

func main() {
	cli.Execute()
}
