package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockboard/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// shell completion, active only when the shell asks for it.
	completion(commander.Name()).Complete(commander.Name())

	flag.Parse()

	if args := flag.Args(); len(args) > 0 && !isCommand(args[0]) {
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// known flag values.
var predictors = map[string]complete.Predictor{
	"storage":     predict.Set{"json", "sqlite", "memory"},
	"data-dir":    predict.Dirs("*"),
	"quotes-file": predict.Files("*.json"),
	"size":        predict.Set{"1x2", "1x4", "2x2", "2x4"},
	"f":           predict.Files("*.y*ml"),
	"o":           predict.Files("*"),
}

// completion describes the command line of name to the shell.
func completion(name string) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range cmd.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch c.Name() {
		case "import":
			sub.Args = predict.Files("*")
		case "topic":
			sub.Args = predict.Set{"readme", "views", "profile", "backup", "serve", "*"}
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
