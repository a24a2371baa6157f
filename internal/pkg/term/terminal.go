// Package term — определение того, подключен ли процесс к терминалу.
package term

import (
	"os"

	"golang.org/x/term"
)

// Terminal сообщает, можно ли запускать интерактивный интерфейс.
type Terminal struct {
	stdinfd  int
	stdoutfd int

	isTerminal func(fd int) bool
}

// NewTerminal создает новый экземпляр Terminal поверх стандартных потоков.
func NewTerminal() *Terminal {
	return &Terminal{
		stdinfd:    int(os.Stdin.Fd()),
		stdoutfd:   int(os.Stdout.Fd()),
		isTerminal: term.IsTerminal,
	}
}

// Interactive сообщает, подключены ли ввод и вывод к терминалу.
func (t *Terminal) Interactive() bool {
	return t.isTerminal(t.stdinfd) && t.isTerminal(t.stdoutfd)
}
