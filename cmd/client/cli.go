package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/insight-hunter/internal/adapter"
)

const defaultAddress = "http://localhost:8080"

var (
	errUnknownCommand = errors.New("unknown command")
	errWrongArgs      = errors.New("wrong number of arguments")
)

const usage = `usage: insight-client [flags] <command> [args]

commands:
  health
  version
  build-info
  register <email> <password>
  login <email> <password>
  forgot <email>
  reset <token> <new-password>
  demo-mode <user-id> <on|off>   (requires -token or CLIENT_TOKEN)
  reports                        (requires -token or CLIENT_TOKEN)
`

type command struct {
	name string
	args []string
}

var commandArity = map[string]int{
	"health":     0,
	"version":    0,
	"build-info": 0,
	"register":   2,
	"login":      2,
	"forgot":     1,
	"reset":      2,
	"demo-mode":  2,
	"reports":    0,
}

// parseArgs applies flags on top of cfg and returns the command to run.
func parseArgs(args []string, cfg *clientConfig) (command, error) {
	fs := flag.NewFlagSet("insight-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	address := fs.String("a", cfg.Adapter.HTTPAddress, "API address")
	timeout := fs.Duration("timeout", cfg.Adapter.RequestTimeout, "request timeout")
	token := fs.String("token", cfg.Token, "bearer token")

	if err := fs.Parse(args); err != nil {
		return command{}, fmt.Errorf("%w\n%s", err, usage)
	}

	cfg.Adapter.HTTPAddress = *address
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = defaultAddress
	}
	cfg.Adapter.RequestTimeout = *timeout
	cfg.Token = *token

	rest := fs.Args()
	if len(rest) == 0 {
		return command{}, fmt.Errorf("%w\n%s", errWrongArgs, usage)
	}

	cmd := command{name: rest[0], args: rest[1:]}
	arity, ok := commandArity[cmd.name]
	if !ok {
		return command{}, fmt.Errorf("%w %q\n%s", errUnknownCommand, cmd.name, usage)
	}
	if len(cmd.args) != arity {
		return command{}, fmt.Errorf("%s: %w\n%s", cmd.name, errWrongArgs, usage)
	}

	return cmd, nil
}

// run executes cmd against the API and prints the outcome to out.
func run(ctx context.Context, api adapter.ServerAdapter, cmd command, out io.Writer) error {
	switch cmd.name {
	case "health":
		status, err := api.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, status)

	case "version":
		version, err := api.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, version)

	case "register":
		user, err := api.Register(ctx, cmd.args[0], cmd.args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "registered %s (id %s, demo mode %t)\n", user.Email, user.UserID, user.DemoMode)

	case "login":
		resp, err := api.Login(ctx, cmd.args[0], cmd.args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "logged in as %s (id %s)\n", resp.User.Email, resp.User.UserID)
		fmt.Fprintln(out, resp.Token)

	case "forgot":
		message, err := api.Forgot(ctx, cmd.args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, message)

	case "reset":
		message, err := api.Reset(ctx, cmd.args[0], cmd.args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, message)

	case "demo-mode":
		enabled, err := parseSwitch(cmd.args[1])
		if err != nil {
			return err
		}
		user, err := api.SetDemoMode(ctx, cmd.args[0], enabled)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "demo mode for %s is now %t\n", user.UserID, user.DemoMode)

	case "reports":
		insights, err := api.Reports(ctx)
		if err != nil {
			return err
		}
		for _, insight := range insights {
			fmt.Fprintf(out, "- %s\n", insight)
		}

	default:
		return fmt.Errorf("%w %q", errUnknownCommand, cmd.name)
	}

	return nil
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("demo mode must be on or off, got %q", value)
	}
	return enabled, nil
}
