package main

import (
	"os"

	"github.com/seitarof/go-explorer/internal/cli"
)

var version = "dev"

func main() {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	os.Exit(cli.Execute(cli.NewRootCommand(version, cli.GoProvider, dirs...)))
}
