package execcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/skiff-sh/fpless/pkg/bufferpool"
)

// Runner runs an exec.Cmd. Useful for tracking and testing command runs.
type Runner interface {
	Run(cmd *Cmd) error
}

type Cmd struct {
	Cmd     *exec.Cmd
	Buffers *Buffers
}

func (c *Cmd) Close() {
	c.Buffers.Close()
}

// Args the argv of the command minus the program name.
func (c *Cmd) Args() []string {
	if len(c.Cmd.Args) == 0 {
		return nil
	}
	return c.Cmd.Args[1:]
}

// Err wraps err with whatever the process wrote to stderr. Returns nil if err is nil.
func (c *Cmd) Err(err error) error {
	if err == nil {
		return nil
	}

	stderr := strings.TrimSpace(c.Buffers.Stderr.String())
	if stderr == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, stderr)
}

func NewCmd(ctx context.Context, name string, args ...string) (*Cmd, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if cmd.Err != nil {
		return nil, cmd.Err
	}

	buffs := NewBuffers()
	buffs.Attach(cmd)

	return &Cmd{
		Cmd:     cmd,
		Buffers: buffs,
	}, nil
}

func Run(cmd *Cmd) error {
	return DefaultRunner.Run(cmd)
}

// DefaultRunner is the default Runner for the package.
var DefaultRunner Runner = RunnerFunc(func(cmd *Cmd) error {
	return cmd.Cmd.Run()
})

var _ Runner = (RunnerFunc)(nil)

type RunnerFunc func(cmd *Cmd) error

func (r RunnerFunc) Run(cmd *Cmd) error {
	return r(cmd)
}

func NewBuffers() *Buffers {
	stdout, stderr := bufferpool.GetBytesBuffer(), bufferpool.GetBytesBuffer()
	return &Buffers{
		Stdout: stdout,
		Stderr: stderr,
	}
}

type Buffers struct {
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

func (b *Buffers) Attach(cmd *exec.Cmd) {
	cmd.Stdout, cmd.Stderr = b.Stdout, b.Stderr
}

func (b *Buffers) Close() {
	bufferpool.PutBytesBuffers(b.Stderr, b.Stdout)
}
