package main

import "github.com/Puneet-Ratnu/murim/internal/cli"

// version is set at build time via -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	cli.Execute(version)
}
