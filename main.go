package main

import "eve-pricebot/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
