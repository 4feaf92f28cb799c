// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hello is the greeting application run by coop-echo -app hello.
//
// It prompts for a name, reads one line, and greets it, until input ends.
// The session is a single kont computation awaiting coopio futures, so it
// runs unchanged over in-memory buffers, host stdio, or UART FIFOs.
package hello

import (
	"bytes"
	"errors"

	"code.hybscloud.com/coop"
	"code.hybscloud.com/coop/coopio"
	"code.hybscloud.com/kont"
)

const (
	// DefaultPrompt is written before every line is read.
	DefaultPrompt = "Hello, what's your name?\n> "

	// LineSize is the longest line, delimiter included, that is greeted.
	LineSize = 64

	// BufferSize is the read-ahead buffer size for input.
	BufferSize = 32
)

var (
	greeting = []byte("Hi ")
	wave     = []byte(" 👋 \n\n")
	tooLong  = []byte("\nSorry, that's a bit long for me 😭\n\n")
	newline  = []byte("\n")
)

// Config tunes a session. The zero value uses the defaults.
type Config struct {
	Prompt   string
	LineSize int
}

// step continues the session with Left and ends it with Right.
type step = kont.Either[struct{}, error]

var next = kont.Left[struct{}, error](struct{}{})

func stop(err error) kont.Eff[step] { return kont.Pure(kont.Right[struct{}](err)) }

// Run returns the session future. It completes with nil once input ends,
// or with the first I/O error. Overlong lines are answered with an
// apology and the session continues with the rest of the line.
func Run(in coopio.BufferedReader, out coopio.Writer, c Config) coop.Future[error] {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.LineSize <= 0 {
		c.LineSize = LineSize
	}
	s := &session{in: in, out: out, prompt: []byte(c.Prompt), line: make([]byte, c.LineSize)}
	return coop.Async(coop.Loop(struct{}{}, s.turn))
}

type session struct {
	in     coopio.BufferedReader
	out    coopio.Writer
	prompt []byte
	line   []byte
}

// write awaits WriteAll of p, then continues with k.
func (s *session) write(p []byte, k func() kont.Eff[step]) kont.Eff[step] {
	return coop.AwaitBind(coopio.WriteAll(s.out, p), func(err error) kont.Eff[step] {
		if err != nil {
			return stop(err)
		}
		return k()
	})
}

func (s *session) turn(struct{}) kont.Eff[step] {
	return s.write(s.prompt, func() kont.Eff[step] {
		return coop.AwaitBind(coopio.Flush(s.out), func(err error) kont.Eff[step] {
			if err != nil {
				return stop(err)
			}
			return coop.AwaitBind(coopio.ReadUntil(s.in, '\n', s.line), s.answer)
		})
	})
}

func (s *session) answer(e kont.Either[error, int]) kont.Eff[step] {
	if err, ok := e.GetLeft(); ok {
		if errors.Is(err, coopio.ErrOverflow) {
			return s.write(tooLong, continueSession)
		}
		return stop(err)
	}
	n, _ := e.GetRight()
	if n == 0 {
		return s.write(newline, func() kont.Eff[step] { return stop(nil) })
	}
	name := bytes.TrimSuffix(s.line[:n], newline)
	return s.write(greeting, func() kont.Eff[step] {
		return s.write(name, func() kont.Eff[step] {
			return s.write(wave, continueSession)
		})
	})
}

func continueSession() kont.Eff[step] { return kont.Pure(next) }
