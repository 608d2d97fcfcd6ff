package export

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Publisher copies finished artifacts to durable storage by invoking an
// external copy command once per file, with the local path and the
// destination appended as the final two arguments. `hadoop fs -put -f` is
// the usual shape; anything argv-like works, and overwrite semantics are the
// command's business.
type Publisher struct {
	command []string
	dest    string
	log     *zap.Logger
}

func NewPublisher(command []string, dest string, log *zap.Logger) (*Publisher, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("publish command is required")
	}
	if dest == "" {
		return nil, fmt.Errorf("publish destination is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{command: command, dest: dest, log: log}, nil
}

// Publish pushes every path to the destination, stopping at the first
// failure. Command output is folded into the error for operator eyes.
func (p *Publisher) Publish(ctx context.Context, paths []string) error {
	for _, path := range paths {
		args := append(append([]string{}, p.command[1:]...), path, p.dest)
		out, err := exec.CommandContext(ctx, p.command[0], args...).CombinedOutput()
		if err != nil {
			msg := strings.TrimSpace(string(out))
			if msg != "" {
				return fmt.Errorf("publish %s to %s: %w: %s", path, p.dest, err, msg)
			}
			return fmt.Errorf("publish %s to %s: %w", path, p.dest, err)
		}
		p.log.Info("published artifact",
			zap.String("path", path),
			zap.String("dest", p.dest))
	}
	return nil
}
