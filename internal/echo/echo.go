// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package echo is the line echo application run by coop-echo.
//
// Every line read is written back as-is. Lines that do not fit the line
// buffer are answered with an apology, and the rest of the line is echoed
// on the next turn.
package echo

import (
	"errors"

	"code.hybscloud.com/coop"
	"code.hybscloud.com/coop/coopio"
	"code.hybscloud.com/kont"
)

const (
	// DefaultPrompt is written before every line is read.
	DefaultPrompt = "Hello 👋\n > "

	// LineSize is the longest line, delimiter included, that is echoed.
	LineSize = 64

	// BufferSize is the read-ahead buffer size for input.
	BufferSize = 32
)

var (
	tooLong = []byte("\nSorry, that's a bit long for me 😭\n")
	newline = []byte("\n")

	// errEnd stops the turn loop once input has ended.
	errEnd = errors.New("echo: end of input")
)

// Config tunes a session. The zero value uses the defaults.
type Config struct {
	Prompt   string
	LineSize int
}

// Run returns the session future. It completes with nil once input ends,
// or with the first I/O error.
func Run(in coopio.BufferedReader, out coopio.Writer, c Config) coop.Future[error] {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.LineSize <= 0 {
		c.LineSize = LineSize
	}
	s := &session{in: in, out: out, prompt: []byte(c.Prompt), line: make([]byte, c.LineSize)}
	return coop.Async(kont.Map(coop.Forever(s.turn), func(err error) error {
		if errors.Is(err, errEnd) {
			return nil
		}
		return err
	}))
}

type session struct {
	in     coopio.BufferedReader
	out    coopio.Writer
	prompt []byte
	line   []byte
}

func (s *session) write(p []byte, k func() kont.Eff[error]) kont.Eff[error] {
	return coop.AwaitBind(coopio.WriteAll(s.out, p), func(err error) kont.Eff[error] {
		if err != nil {
			return kont.Pure(err)
		}
		return k()
	})
}

func (s *session) turn() kont.Eff[error] {
	return s.write(s.prompt, func() kont.Eff[error] {
		return coop.AwaitBind(coopio.Flush(s.out), func(err error) kont.Eff[error] {
			if err != nil {
				return kont.Pure(err)
			}
			return coop.AwaitBind(coopio.ReadUntil(s.in, '\n', s.line), s.answer)
		})
	})
}

func (s *session) answer(e kont.Either[error, int]) kont.Eff[error] {
	if err, ok := e.GetLeft(); ok {
		if errors.Is(err, coopio.ErrOverflow) {
			return s.write(tooLong, again)
		}
		return kont.Pure(err)
	}
	n, _ := e.GetRight()
	if n == 0 {
		return s.write(newline, func() kont.Eff[error] { return kont.Pure(errEnd) })
	}
	return s.write(s.line[:n], again)
}

func again() kont.Eff[error] { return kont.Pure[error](nil) }
