package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/attackallmonsters/adsr/audio"
	"github.com/attackallmonsters/adsr/script"
	"github.com/chzyer/readline"
)

type env struct {
	gate       *audio.Gate
	sampleRate float64
}

func (e *env) eval(input string) (string, error) {
	command, err := script.Parse(input)
	if err != nil {
		return "", err
	}
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(command.Args) < arity {
				return "", fmt.Errorf("%s: wrong number of arguments: need at least %v, got %v",
					cmd.name, arity, len(command.Args))
			}
		} else if len(command.Args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		result, err := cmd.run(e, command.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

func repl(env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return err
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if result, err := env.eval(line); err != nil {
			fmt.Println(err)
		} else if result != "" {
			fmt.Println(result)
		}
	}
}

type command struct {
	name  string
	help  string
	run   func(*env, []script.Node) (string, error)
	arity int // -n means len(args) must be >= n
}

// commands is populated in init to let help range over the table.
var commands []command

func init() {
	commands = []command{
		{"start", "open the gate and run the envelope", startCommand, 0},
		{"stop", "close the gate and release", stopCommand, 0},
		{"set", "set a property, e.g. set env.attack 25", setCommand, 2},
		{"get", "read a property", getCommand, 1},
		{"preset", "load a preset by name", presetCommand, 1},
		{"presets", "list the available presets", presetsCommand, 0},
		{"wave", "select the oscillator waveform", waveCommand, 1},
		{"freq", "set the oscillator frequency in Hz", freqCommand, 1},
		{"load", "loop a wav file as the sound source", loadCommand, 1},
		{"trig", "retrigger at a rate in Hz, optionally with a gate ratio", trigCommand, -1},
		{"plot", "draw the envelope contour", plotCommand, 0},
		{"bounce", "render one envelope cycle to a wav file", bounceCommand, -1},
		{"help", "print this listing", helpCommand, 0},
	}
}

func readArgs(args []script.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case script.String:
				*p = string(s)
			case script.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch v := arg.(type) {
			case script.Float:
				*p = float64(v)
			case script.Int:
				*p = float64(v)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			v, ok := arg.(script.Int)
			if !ok {
				return fmt.Errorf("argument error: expected an integer")
			}
			*p = int(v)
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}
