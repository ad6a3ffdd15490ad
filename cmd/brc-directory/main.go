package main

import "github.com/playamaps/brc-directory/internal/cli"

func main() {
	cli.Execute()
}
