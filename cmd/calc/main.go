package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	calculator "github.com/TomShaw333/RustCalculatorSuite"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: calc [-qh] [-e expr] [-c expr] [-f file]")
	fmt.Fprintln(os.Stderr, "  -e expr  evaluate an RPN expression and exit")
	fmt.Fprintln(os.Stderr, "  -c expr  convert an RPN expression to infix and exit")
	fmt.Fprintln(os.Stderr, "  -f file  evaluate each non-empty line of file")
	fmt.Fprintln(os.Stderr, "  -q       plain output, no color")
	fmt.Fprintln(os.Stderr, "  -h       show this help")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "With no flags, calc starts an interactive session. Expressions are")
	fmt.Fprintln(os.Stderr, "whitespace separated RPN tokens; ans names the previous result.")
	fmt.Fprintln(os.Stderr, "Session commands: history, clear, infix <expr>, quit.")
}

func main() {
	log.SetFlags(0)
	opts, optind, err := getopt.Getopts(os.Args, "e:c:f:qh")
	if err != nil {
		log.Fatalln(err)
	}
	var eval, conv, file string
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			eval = opt.Value
		case 'c':
			conv = opt.Value
		case 'f':
			file = opt.Value
		case 'q':
			color.NoColor = true
		case 'h':
			usage()
			return
		}
	}
	if optind < len(os.Args) {
		usage()
		os.Exit(1)
	}
	switch {
	case conv != "":
		out, err := calculator.ToInfixString(conv)
		if err != nil {
			log.Fatalf("%v (%v)", err, calculator.CodeOf(err))
		}
		fmt.Println(out)
	case eval != "":
		v, err := calculator.EvaluateString(eval)
		if err != nil {
			log.Fatalf("%v (%v)", err, calculator.CodeOf(err))
		}
		fmt.Println(format(v))
	case file != "":
		if err := evalFile(file); err != nil {
			log.Fatalln(err)
		}
	default:
		repl()
	}
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func evalFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	hist := calculator.NewHistory(0)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := calculator.Evaluate(hist.Resolve(strings.Fields(line)))
		hist.Add(line, v, err)
		if err != nil {
			fmt.Printf("%s: error: %v\n", line, err)
			continue
		}
		fmt.Printf("%s = %s\n", line, format(v))
	}
	return sc.Err()
}

func repl() {
	hist := calculator.NewHistory(0)
	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line == "quit" || line == "exit":
			return
		case line == "history":
			showHistory(hist)
		case line == "clear":
			hist.Clear()
			fmt.Println("history cleared")
		case strings.HasPrefix(line, "infix "):
			out, err := calculator.ToInfixString(strings.TrimPrefix(line, "infix "))
			if err != nil {
				color.Red("error: %v (%v)", err, calculator.CodeOf(err))
			} else {
				color.Cyan("%s", out)
			}
		default:
			v, err := calculator.Evaluate(hist.Resolve(strings.Fields(line)))
			hist.Add(line, v, err)
			if err != nil {
				color.Red("error: %v (%v)", err, calculator.CodeOf(err))
			} else {
				color.Cyan("= %s", format(v))
			}
		}
		fmt.Print("> ")
	}
}

func showHistory(hist *calculator.History) {
	entries := hist.Entries()
	if len(entries) == 0 {
		fmt.Println("No calculations yet.")
		return
	}
	fmt.Println("Calculation History:")
	for i, e := range entries {
		fmt.Printf("Entry %d:\n", i+1)
		fmt.Printf("  Input: %s\n", e.Input)
		if e.Err != nil {
			fmt.Printf("  Error: %v\n", e.Err)
		} else {
			fmt.Printf("  Result: %s\n", format(e.Result))
		}
	}
}
