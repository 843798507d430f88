package main

import (
	"playerbase/cmd/playerbase-cli/commands"
	"playerbase/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
