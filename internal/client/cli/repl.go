package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	route() Route
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Home(ctx context.Context) error
	Vote(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the E-Hima Vote CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' when the command is available on the current
// route. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("evote %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: " + strings.Join(slices.Concat(routeCommands[a.route()], alwaysAvailable), ", "))
			continue
		case "status":
			report(a.Status(ctx))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if _, known := commandSet[cmd]; !known {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !allowed(a.route(), cmd) {
			printlnFn(fmt.Sprintf("'%s' is not available on the %s screen (type 'help')", cmd, a.route()))
			continue
		}

		switch cmd {
		case "register":
			report(a.Register(ctx))
		case "login":
			report(a.Login(ctx))
		case "profile":
			report(a.Profile(ctx))
		case "home":
			report(a.Home(ctx))
		case "vote":
			report(a.Vote(ctx, args))
		case "logout":
			report(a.Logout(ctx))
		}
	}
}

var commandSet = map[string]struct{}{
	"register": {}, "login": {}, "profile": {}, "home": {}, "vote": {}, "logout": {},
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
}
