// Package main is the entry point for the classdoc CLI.
package main

import "classdoc.dev/pkg/classdoc/cmd"

func main() {
	cmd.Execute()
}
