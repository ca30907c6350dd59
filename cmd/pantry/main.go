// Command pantry is the command-line interface to the pantry document store.
package main

import "github.com/mesh-intelligence/pantry/internal/cli"

func main() {
	cli.Execute()
}
