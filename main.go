package main

import "github.com/maxwharris/Produck/internal/cli"

func main() {
	cli.Execute()
}
