package logger

import "frametrim/domain/logging"

// Nop discards every message.
type Nop struct{}

// NewNop creates a logger that discards everything.
func NewNop() *Nop {
	return &Nop{}
}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{}) {}
func (Nop) Warn(string, ...interface{}) {}
func (Nop) Error(string, ...interface{}) {}
func (n Nop) WithComponent(string) logging.Logger { return n }

var _ logging.Logger = Nop{}
