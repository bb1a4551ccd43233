// Command diskscan exercises the scanning engine end to end: scan a
// directory, classify its temp/cache/build-artifact contents, and print a
// flat text summary. It is a smoke-test entry point for the engine, not a
// rendering layer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
