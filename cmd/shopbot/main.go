// cmd/shopbot/main.go
package main

import "github.com/javajoker/shopbot/internal/cmd"

func main() {
	cmd.Execute()
}
