// Command aistream chats with any configured provider profile from the
// terminal. With a prompt on the command line it asks once and prints the
// streamed reply; without one it reads prompts from stdin and keeps the
// conversation history between turns.
//
//	aistream --profile claude "Explain SSE in one sentence"
//	aistream --profiles ~/.aistream/profiles.toml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
