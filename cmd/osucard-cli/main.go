package main

import (
	"context"
	"osucard-backend/cmd/osucard-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
