package main

import "github.com/model-pkgs/registry/internal/cli"

func main() {
	cli.Execute()
}
