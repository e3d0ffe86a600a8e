package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Use(name string) error
	List(ctx context.Context, name string, fresh bool) error
	Show(ctx context.Context, name string) error
	Add(ctx context.Context, name string) error
	Edit(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	Refresh(ctx context.Context) error
	Reset(ctx context.Context, name string) error
	Stats(ctx context.Context) error
}

const helpText = "Available commands: (l)ist [collection] [-f], show, add, edit, delete, refresh, reset [collection], stats, use <collection>, exit"

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or on "exit"/"quit". A failed command prints a
// notification and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer, prompt bool) {
	for {
		if prompt {
			fmt.Fprintf(w, "ck %s> ", statusFn())
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		name, fresh := "", false
		for _, arg := range args {
			if arg == "-f" || arg == "--fresh" {
				fresh = true
				continue
			}
			if name == "" {
				name = arg
			}
		}

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)
		case "l", "list":
			cmdErr = a.List(ctx, name, fresh)
		case "show":
			cmdErr = a.Show(ctx, name)
		case "add":
			cmdErr = a.Add(ctx, name)
		case "edit":
			cmdErr = a.Edit(ctx, name)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, name)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "reset":
			cmdErr = a.Reset(ctx, name)
		case "stats":
			cmdErr = a.Stats(ctx)
		case "use":
			if name == "" {
				fmt.Fprintln(w, "Usage: use <collection>")
				continue
			}
			cmdErr = a.Use(name)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			notifyError(w, cmd, cmdErr)
		}
		if err != nil {
			return
		}
	}
}
