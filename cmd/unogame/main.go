package main

import (
	"github.com/mcoot/unogame-go/internal/cli"
)

func main() {
	cli.Execute()
}
