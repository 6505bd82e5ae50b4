package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error

	Waitlist(ctx context.Context) error
	Contact(ctx context.Context) error

	Messages(ctx context.Context) error
	Send(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Participants(ctx context.Context) error
	Documents(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error

	Menu(ctx context.Context, args []string) error
	Consent(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: register, login, forgot, reset, waitlist, contact, consent, exit"
	helpSignedIn  = "Available commands: me, messages, send, read <id>, upload <type> <path>, status, participants, documents <user id>, review <doc id> <status> [reason], menu, contact, consent, logout, exit"
)

// runREPL reads commands from scanner until EOF or exit. Handler errors are
// reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fg %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "me":
			err = a.Me(ctx)
		case "forgot":
			err = a.Forgot(ctx)
		case "reset":
			err = a.Reset(ctx)
		case "waitlist":
			err = a.Waitlist(ctx)
		case "contact":
			err = a.Contact(ctx)
		case "messages":
			err = a.Messages(ctx)
		case "send":
			err = a.Send(ctx)
		case "read":
			err = a.Read(ctx, args)
		case "upload":
			err = a.Upload(ctx, args)
		case "status":
			err = a.Status(ctx)
		case "participants":
			err = a.Participants(ctx)
		case "documents":
			err = a.Documents(ctx, args)
		case "review":
			err = a.Review(ctx, args)
		case "menu":
			err = a.Menu(ctx, args)
		case "consent":
			err = a.Consent(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
