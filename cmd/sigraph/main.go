// Command sigraph inspects and evaluates signal graph documents from the
// command line: validate authored files, or run them for a number of ticks
// and print what each entry point produces.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
