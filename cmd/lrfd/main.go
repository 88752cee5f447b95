package main

import (
	"os"

	"Abutment/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:], os.Stderr); err != nil {
		os.Exit(1)
	}
}
