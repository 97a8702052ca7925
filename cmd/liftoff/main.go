// Package main is the entry point for the liftoff CLI tool.
package main

import (
	"github.com/hargabyte/liftoff/internal/cmd"
)

func main() {
	cmd.Execute()
}
