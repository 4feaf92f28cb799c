// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

// Command coop-echo runs a line session on standard input and output.
//
// The echo session writes every line back; the hello session greets every
// name. Either is driven on a single coop executor over non-blocking
// stdio, parking in the kernel between keystrokes.
//
//	coop-echo [-app echo|hello] [-prompt text] [-verbose]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"code.hybscloud.com/coop"
	"code.hybscloud.com/coop/coopio"
	"code.hybscloud.com/coop/internal/echo"
	"code.hybscloud.com/coop/internal/hello"
	"code.hybscloud.com/coop/native"
)

// session builds the future of one application over in and out.
type session func(in coopio.BufferedReader, out coopio.Writer, prompt string) coop.Future[error]

var apps = map[string]struct {
	bufSize int
	run     session
}{
	"echo": {echo.BufferSize, func(in coopio.BufferedReader, out coopio.Writer, prompt string) coop.Future[error] {
		return echo.Run(in, out, echo.Config{Prompt: prompt})
	}},
	"hello": {hello.BufferSize, func(in coopio.BufferedReader, out coopio.Writer, prompt string) coop.Future[error] {
		return hello.Run(in, out, hello.Config{Prompt: prompt})
	}},
}

func main() {
	app := flag.String("app", "echo", "session to run: echo or hello")
	prompt := flag.String("prompt", "", "text written before each line is read (default: the session's own)")
	verbose := flag.Bool("verbose", false, "log driver loop statistics to stderr")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *app, *prompt); err != nil {
		logger.Error("coop-echo failed", "app", *app, "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, app, prompt string) error {
	a, ok := apps[app]
	if !ok {
		return fmt.Errorf("unknown app %q", app)
	}
	ex, err := coop.New(coop.WithLogger(logger))
	if err != nil {
		return err
	}
	defer ex.Close()

	stdin, err := native.Stdin()
	if err != nil {
		return err
	}
	defer stdin.Close()
	stdout, err := native.Stdout()
	if err != nil {
		return err
	}
	defer stdout.Close()

	in := coopio.NewBufReader(stdin, make([]byte, a.bufSize))
	return coop.BlockOn(ex, a.run(in, stdout, prompt))
}
