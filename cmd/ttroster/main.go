package main

import "github.com/plebrun/ttroster/internal/cli"

func main() {
	cli.Execute()
}
