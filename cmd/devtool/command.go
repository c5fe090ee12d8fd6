package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
)

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, con *Console, args []string) error
}

// Registry keeps commands in the order they were registered, which is also
// the order the help text lists them
type Registry struct {
	order  []Command
	byName map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.Register(cmd)
	}
	return r
}

// Register adds cmd, replacing any command with the same name
func (r *Registry) Register(cmd Command) {
	if _, exists := r.byName[cmd.Name()]; !exists {
		r.order = append(r.order, cmd)
	} else {
		for i, c := range r.order {
			if c.Name() == cmd.Name() {
				r.order[i] = cmd
			}
		}
	}
	r.byName[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Dispatch runs the command named by args[0] with the remaining arguments
func (r *Registry) Dispatch(ctx context.Context, con *Console, args []string) error {
	if len(args) == 0 {
		r.WriteHelp(con.out)
		return errNoCommand
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		r.WriteHelp(con.out)
		return fmt.Errorf("%w: %q", errUnknownCommand, args[0])
	}
	if err := cmd.Run(ctx, con, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}

func (r *Registry) WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.order {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}
