// Command blogctl works with stored blog content offline: render it,
// summarize it, normalize it and inspect its sections.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
