package main

import (
	"context"
	"os"

	"github.com/hypermedia-go/jsonapi/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}
