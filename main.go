package main

import "github.com/anvivatsa1/DreamStay/internal/cli"

func main() {
	cli.Execute()
}
