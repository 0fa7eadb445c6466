// The main package for the crawler executable.
package main

import (
	"github.com/bobocheung/Distributed-Web-Crawler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
