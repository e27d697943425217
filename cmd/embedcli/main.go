// Command embedcli is a demonstration host for the embedcli line-editing
// engine: it wires a cobra command tree through the command package,
// persists history via histstore, and runs the session on the real
// controlling terminal using the host package's raw-mode harness.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kir-gadjello/embedcli"
	"github.com/kir-gadjello/embedcli/command"
	"github.com/kir-gadjello/embedcli/config"
	"github.com/kir-gadjello/embedcli/histstore"
	"github.com/kir-gadjello/embedcli/host"
	"github.com/kir-gadjello/embedcli/historytui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "embedcli:", err)
		os.Exit(1)
	}
}

func run() error {
	root := buildRootCommand()

	switch {
	case len(os.Args) > 1 && os.Args[1] == "history":
		return runHistoryBrowser()
	case len(os.Args) > 1 && os.Args[1] == "doctor":
		return runDoctor()
	case len(os.Args) > 1 && os.Args[1] == "exec":
		root.SetArgs(os.Args[2:])
		return root.Execute()
	default:
		return runShell(root)
	}
}

// buildRootCommand describes the demo's command table; the command
// package derives an embedcli.CommandSet from it.
func buildRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "embedcli",
		Short: "Embedded line-editing engine demo shell",
	}

	echoCmd := &cobra.Command{
		Use:   "echo [text...]",
		Short: "echo arguments",
		Long:  "echo: prints its arguments back, space-joined.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(strings.Join(args, " "))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "show status",
		Long:  "status: reports that the demo session is running.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("ok")
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "stop the session",
		Long:  "stop: exits the demo shell.",
		RunE: func(cmd *cobra.Command, args []string) error {
			os.Exit(0)
			return nil
		},
	}

	root.AddCommand(echoCmd, statusCmd, stopCmd)
	return root
}

// stdoutWriter adapts os.Stdout to embedcli.Writer.
type stdoutWriter struct {
	w *bufio.Writer
}

func (s *stdoutWriter) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *stdoutWriter) Flush() error                { return s.w.Flush() }

func runShell(root *cobra.Command) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	file, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	defaults := config.Resolved{
		CMDLEN: 128, HISTLEN: 4096, Prompt: "embedcli> ",
		EnableAutocomplete: true, EnableHistory: true, EnableHelp: true,
	}
	profile := defaults
	if file.Default != "" {
		profile, err = config.Resolve(file, file.Default, defaults)
		if err != nil {
			return err
		}
	}
	if err := config.Validate(profile); err != nil {
		return err
	}

	cs := command.New(root)
	w := &stdoutWriter{w: bufio.NewWriter(os.Stdout)}
	ctrl := embedcli.NewController(w, cs, embedcli.Config{
		CMDLEN:             profile.CMDLEN,
		HISTLEN:            profile.HISTLEN,
		Prompt:             profile.Prompt,
		EnableAutocomplete: profile.EnableAutocomplete,
		EnableHistory:      profile.EnableHistory,
		EnableHelp:         profile.EnableHelp,
	})

	store, storeErr := openHistStore()
	if storeErr != nil {
		log.Printf("embedcli: history persistence disabled: %v", storeErr)
	}
	if store != nil {
		defer store.Close()
		if lines, err := store.Load(context.Background()); err != nil {
			log.Printf("embedcli: history load failed: %v", err)
		} else {
			ctrl.PrimeHistory(toByteLines(lines))
		}
		ctrl.OnSubmit = func(line []byte) {
			if err := store.Append(context.Background(), string(line)); err != nil {
				log.Printf("embedcli: history append failed: %v", err)
			}
		}
	}

	tty := host.New(int(os.Stdin.Fd()))
	if err := tty.RawMode(); err != nil {
		return err
	}
	defer tty.Restore()

	yank := host.NewClipboardYank()

	if err := ctrl.Start(); err != nil {
		return err
	}
	defer w.Flush()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return nil
		}
		b := buf[0]
		if yank.Intercept(b, ctrl.Line()) {
			continue
		}
		if err := ctrl.ProcessByte(b); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
}

func openHistStore() (*histstore.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return histstore.Open(filepath.Join(home, ".embedcli", "history.db"))
}

func toByteLines(lines []string) [][]byte {
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = []byte(l)
	}
	return out
}

func runHistoryBrowser() error {
	store, err := openHistStore()
	if err != nil {
		return err
	}
	defer store.Close()

	lines, err := store.Load(context.Background())
	if err != nil {
		return err
	}
	m := historytui.New(lines)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(historytui.Model); ok {
		if line, ok := fm.Selected(); ok {
			fmt.Println(line)
		}
	}
	return nil
}

func runDoctor() error {
	fmt.Println("embedcli doctor")
	fmt.Println("===============")

	shell := host.DetectShell()
	fmt.Printf("shell       : %s (%s)\n", shell.Name, shell.Path)

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Printf("config      : error: %v\n", err)
	} else if _, statErr := os.Stat(cfgPath); statErr == nil {
		fmt.Printf("config      : found (%s)\n", cfgPath)
	} else {
		fmt.Printf("config      : missing (%s), built-in defaults will be used\n", cfgPath)
	}

	if _, err := openHistStore(); err != nil {
		fmt.Printf("history     : unavailable: %v\n", err)
	} else {
		fmt.Println("history     : sqlite3 store reachable")
	}

	return nil
}
