package main

import (
	"os"

	"github.com/hashicorp-forge/matrix/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
