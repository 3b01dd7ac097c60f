package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

type ExecFunc func(line string) error

// MainLoop runs interactive prompt on terminal, otherwise executes stdin
// as a script and stops at first error.
func MainLoop(tag string, exec ExecFunc, complete prompt.Completer, onExit func()) error {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		for range signalCh {
			if onExit != nil {
				onExit()
			}
			os.Exit(1)
		}
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompt.New(
			func(line string) { _ = exec(line) },
			complete,
			prompt.OptionPrefix(tag+"> "),
			prompt.OptionTitle(tag),
		).Run()
		return nil
	}
	return RunScript(os.Stdin, exec)
}

func RunScript(r io.Reader, exec ExecFunc) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if err := exec(scanner.Text()); err != nil {
			return errors.Annotatef(err, "line=%d", lineno)
		}
	}
	return errors.Trace(scanner.Err())
}
