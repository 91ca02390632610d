package main

import (
	"os"

	"github.com/ehimavote/evote/internal/buildinfo"
	"github.com/ehimavote/evote/internal/server"
)

func main() {
	buildinfo.PrintBuildData(os.Stderr)
	server.Execute()
}
