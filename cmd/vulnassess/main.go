package main

import "github.com/L1nMay/vulnassess/internal/cli"

func main() {
	cli.Execute()
}
