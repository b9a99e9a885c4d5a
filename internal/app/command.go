package app

import "gocv.io/x/gocv"

// Command is a user request handled once per tick.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandUndo
	CommandSaveSnapshot
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandUndo:
		return "undo"
	case CommandSaveSnapshot:
		return "save-snapshot"
	default:
		return "none"
	}
}

// Key codes understood by KeyCommand.
const (
	keyEsc  = 27
	keyUndo = 'u'
	keySave = 's'
)

// KeyCommand maps a WaitKey result to a command.
func KeyCommand(key int) Command {
	switch key & 0xFF {
	case keyEsc:
		return CommandQuit
	case keyUndo:
		return CommandUndo
	case keySave:
		return CommandSaveSnapshot
	default:
		return CommandNone
	}
}

// CommandSource delivers user commands without blocking.
type CommandSource interface {
	Poll() Command
}

// Presenter displays a composited frame.
type Presenter interface {
	Show(frame gocv.Mat) error
}

// ChannelSource is a CommandSource fed from other goroutines.
type ChannelSource struct {
	ch chan Command
}

// NewChannelSource creates a source buffering up to size commands.
func NewChannelSource(size int) *ChannelSource {
	return &ChannelSource{ch: make(chan Command, size)}
}

// Send queues cmd. It reports false and drops the command when the buffer is full.
func (s *ChannelSource) Send(cmd Command) bool {
	select {
	case s.ch <- cmd:
		return true
	default:
		return false
	}
}

// Poll returns the next queued command or CommandNone.
func (s *ChannelSource) Poll() Command {
	select {
	case cmd := <-s.ch:
		return cmd
	default:
		return CommandNone
	}
}
