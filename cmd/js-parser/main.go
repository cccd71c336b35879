package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/errors"
	"github.com/wudi/js-parser/lexer"
	"github.com/wudi/js-parser/parser"
	"github.com/wudi/js-parser/version"
)

func main() {
	app := &cli.Command{
		Name:  "js-parser",
		Usage: "An ECMAScript parser written in Go",
		Commands: []*cli.Command{
			replCommand,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "module",
				Usage: "Parse the input as a module (implies strict mode)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Parse scripts in strict mode",
			},
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "Dump the token stream instead of the AST",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print parse statistics instead of the AST",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "Show version",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				fmt.Println(version.Version())
				return nil
			}
			source, name, err := readInput(cmd.Args().First())
			if err != nil {
				return err
			}
			opts := parser.Options{
				Module: cmd.Bool("module"),
				Strict: cmd.Bool("strict"),
			}
			if cmd.Bool("tokens") {
				return dumpTokens(source)
			}
			if cmd.Bool("stats") {
				return dumpStats(source, name, opts)
			}
			return dumpAST(source, opts)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// readInput 读入源文件或标准输入
func readInput(path string) (string, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func dumpAST(source string, opts parser.Options) error {
	prog, err := parser.Parse(source, opts)
	if err != nil {
		return err
	}
	data, err := ast.ToJSONIndent(prog)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func dumpTokens(source string) error {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Println(tok.Describe())
	}
	return nil
}

func dumpStats(source, name string, opts parser.Options) error {
	start := time.Now()
	prog, err := parser.Parse(source, opts)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	fmt.Printf("file:       %s\n", name)
	fmt.Printf("source:     %s\n", humanize.Bytes(uint64(len(source))))
	fmt.Printf("sourceType: %s\n", prog.SourceType)
	fmt.Printf("statements: %s\n", humanize.Comma(int64(len(prog.Body))))
	fmt.Printf("nodes:      %s\n", humanize.Comma(int64(ast.Count(prog))))
	fmt.Printf("parsed in:  %s\n", elapsed)
	return nil
}

// printError 语法错误带位置高亮输出
func printError(err error) {
	if perr, ok := err.(*errors.Error); ok {
		pos := color.New(color.Bold).Sprintf("%d:%d", perr.Position.Line, perr.Position.Column)
		kind := color.New(color.FgRed).Sprint("SyntaxError")
		if perr.Type == errors.LexicalError {
			kind = color.New(color.FgRed).Sprint("LexicalError")
		}
		fmt.Fprintf(os.Stderr, "%s at %s: %s\n", kind, pos, perr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// replCommand 交互式解析：逐行读入，打印 AST 概要或错误
var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "Parse lines interactively and print an outline of the top-level statements",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "module",
			Usage: "Parse lines as modules",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		rl, err := readline.New("js> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		opts := parser.Options{Module: cmd.Bool("module")}
		for {
			line, err := rl.Readline()
			if err != nil { // io.EOF 或中断
				return nil
			}
			if line == "" {
				continue
			}
			prog, perr := parser.Parse(line, opts)
			if perr != nil {
				printError(perr)
				continue
			}
			outline(prog)
		}
	},
}

// outline 打印顶层语句的节点类型概要
func outline(prog *ast.Program) {
	for _, stmt := range prog.Body {
		start, end := stmt.Range()
		fmt.Printf("%s [%d, %d)\n", stmt.Kind(), start, end)
	}
}
