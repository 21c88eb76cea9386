// Command gridctl is the CLI client for a gridd daemon.
package main

import (
	"fmt"
	"os"

	"github.com/me/gogrid/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
