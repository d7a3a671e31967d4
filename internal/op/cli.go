package op

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/benaskins/optui/internal/item"
	"github.com/benaskins/optui/internal/logbuf"
)

// DefaultBin is the 1Password CLI executable looked up on PATH.
const DefaultBin = "op"

// stderrLines bounds how much op diagnostic output is kept per call.
const stderrLines = 20

// CLI implements Backend by running the op binary.
type CLI struct {
	bin    string
	logger *slog.Logger
}

// NewCLI returns a Backend running bin (DefaultBin when empty).
func NewCLI(bin string) *CLI {
	if bin == "" {
		bin = DefaultBin
	}
	return &CLI{
		bin:    bin,
		logger: slog.With("component", "op"),
	}
}

func (c *CLI) ListSummaries(ctx context.Context, selector string) ([]item.Summary, error) {
	args := ListArgs(selector)
	out, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	var summaries []item.Summary
	if err := json.Unmarshal(out, &summaries); err != nil {
		return nil, &ParseError{Args: args, Err: err}
	}
	return summaries, nil
}

func (c *CLI) GetRecord(ctx context.Context, id string) ([]byte, error) {
	args := GetArgs(id)
	out, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}
	if !json.Valid(out) {
		return nil, &ParseError{Args: args, Err: errors.New("output is not valid JSON")}
	}
	return out, nil
}

func (c *CLI) ReadSecret(ctx context.Context, reference string) (string, error) {
	out, err := c.run(ctx, ReadArgs(reference))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// run executes op with args and returns its stdout.
func (c *CLI) run(ctx context.Context, args []string) ([]byte, error) {
	c.logger.Debug("running op", "args", redactArgs(args))

	var stdout bytes.Buffer
	stderr := logbuf.NewTail(stderrLines)

	cmd := exec.CommandContext(ctx, c.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			diag := diagnostics(stderr)
			c.logger.Error("op command failed",
				"args", redactArgs(args),
				"exit_code", exitErr.ExitCode(),
				"stderr", diag)
			return nil, &ExitError{Args: args, Code: exitErr.ExitCode(), Stderr: diag}
		}
		return nil, &LaunchError{Bin: c.bin, Err: err}
	}
	return stdout.Bytes(), nil
}

// diagnostics renders the retained stderr, noting how much was cut.
func diagnostics(t *logbuf.Tail) string {
	if n := t.Dropped(); n > 0 {
		return fmt.Sprintf("(%d earlier lines omitted)\n%s", n, t.String())
	}
	return t.String()
}
