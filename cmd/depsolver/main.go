package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/chef/depsolver"
)

func main() {
	if len(os.Args) < 2 {
		help(nil)
		os.Exit(2)
	}

	do := os.Args[1]
	args := os.Args[2:]
	for _, cmd := range commands {
		if do != cmd.name {
			continue
		}
		if err := cmd.fn(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", depsolver.FormatError(err))
			os.Exit(1)
		}
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "unknown command: %q\n", do)
	help(nil)
	os.Exit(2)
}

type command struct {
	fn    func(args []string) error
	name  string
	short string
}

var commands = []*command{
	{fn: solveCmd, name: "solve", short: "solve a run-list against a universe file"},
	{fn: checkCmd, name: "check", short: "validate a universe file"},
}

func init() {
	commands = append(commands, &command{
		fn:    help,
		name:  "help",
		short: "show this help",
	})
}

func help([]string) error {
	fmt.Fprintf(os.Stderr, "usage: depsolver <command> [flags] [args]\n\ncommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", cmd.name, cmd.short)
	}
	return nil
}

func solveCmd(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	file := fs.StringP("file", "f", "universe.yaml", "universe file to solve against")
	timeout := fs.DurationP("timeout", "t", 0, "per-solve deadline (0 = none)")
	verbose := fs.BoolP("verbose", "v", false, "trace the solve at debug level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("solve requires at least one goal, e.g. %q", "app1 >= 1.0")
	}

	g, err := loadUniverseFile(*file)
	if err != nil {
		return err
	}

	goals := make([]depsolver.Constraint, 0, fs.NArg())
	for _, raw := range fs.Args() {
		c, err := depsolver.ParseConstraint(raw)
		if err != nil {
			return err
		}
		goals = append(goals, c)
	}

	l := logrus.New()
	if *verbose {
		l.Level = logrus.DebugLevel
	} else {
		l.Level = logrus.WarnLevel
	}

	s := depsolver.NewSolver(nil, l)
	asgn, err := s.SolveTimeout(g, goals, *timeout)
	if err != nil {
		return err
	}

	for _, a := range asgn {
		fmt.Println(a)
	}
	return nil
}

func checkCmd(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	file := fs.StringP("file", "f", "universe.yaml", "universe file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := loadUniverseFile(*file)
	if err != nil {
		return err
	}

	fmt.Printf("%s: ok, %d package(s)\n", *file, g.Len())
	return nil
}

func loadUniverseFile(path string) (*depsolver.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return depsolver.LoadUniverse(f)
}
