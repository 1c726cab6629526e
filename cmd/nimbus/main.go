// cmd/nimbus/main.go
package main

import (
	"github.com/nimbusmcp/nimbus/internal/commands"
)

// main starts the nimbus CLI by delegating to the cobra root command.
func main() {
	commands.Execute()
}
