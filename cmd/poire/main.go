package main

import (
	"github.com/poiregame/poire-go/internal/cli"
)

func main() {
	cli.Execute()
}
