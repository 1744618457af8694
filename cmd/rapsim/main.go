// cmd/rapsim/main.go
package main

import "rapsim/internal/cmd"

func main() {
	cmd.Execute() // initialize cobra commands
}
