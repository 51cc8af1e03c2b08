package journal

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/complysort/complysort/internal/logger"
	"github.com/complysort/complysort/internal/metrics"
)

// Instruction is one parsed rollback line: restore Src by moving Dest back.
type Instruction struct {
	Dest string
	Src  string
}

// mv '<dest>' '<src>' — the persisted format kept for compatibility with
// existing rollback logs. Parsed structurally, never handed to a shell.
var instructionRe = regexp.MustCompile(`^mv '(.*)' '(.*)'$`)

// ParseInstruction decodes a single rollback-log line.
func ParseInstruction(line string) (Instruction, error) {
	m := instructionRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return Instruction{}, fmt.Errorf("malformed rollback line: %q", line)
	}
	return Instruction{Dest: m[1], Src: m[2]}, nil
}

// ReplayResult summarizes a rollback pass.
type ReplayResult struct {
	Attempted int
	Restored  int
	Skipped   int
	Failed    int
}

// Replayer undoes recorded actions by replaying the rollback log in reverse
// chronological order, most recent first. Later copies are undone before
// earlier ones so overlapping actions on the same source unwind cleanly.
type Replayer struct {
	rollbackPath string
	log          *logrus.Entry
}

// NewReplayer creates a replayer for the given rollback log.
func NewReplayer(rollbackPath string) *Replayer {
	return &Replayer{
		rollbackPath: rollbackPath,
		log:          logger.WithComponent("rollback"),
	}
}

// Replay executes every instruction in reverse order. Individual failures are
// logged and counted but never abort the pass: a single missing file must not
// block restoration of the rest. The log itself is left untouched, so a
// second replay may repeat moves whose targets still exist.
func (r *Replayer) Replay() (ReplayResult, error) {
	instructions, err := r.load()
	if err != nil {
		return ReplayResult{}, err
	}

	var res ReplayResult
	for i := len(instructions) - 1; i >= 0; i-- {
		in := instructions[i]
		res.Attempted++
		metrics.IncRollbackReplay()

		// LEAVE entries record src == dest; nothing to move.
		if in.Src == in.Dest {
			res.Skipped++
			continue
		}

		if _, err := os.Stat(in.Dest); err != nil {
			r.log.WithFields(logrus.Fields{"dest": in.Dest, "src": in.Src}).
				WithError(err).Warn("rollback target missing, skipping")
			res.Failed++
			metrics.IncRollbackFailure()
			continue
		}

		if err := os.Rename(in.Dest, in.Src); err != nil {
			r.log.WithFields(logrus.Fields{"dest": in.Dest, "src": in.Src}).
				WithError(err).Error("rollback move failed")
			res.Failed++
			metrics.IncRollbackFailure()
			continue
		}

		res.Restored++
	}

	return res, nil
}

// load reads and parses the whole rollback log in file order. Malformed
// lines fail the load: a rollback from a corrupt log is worse than none.
func (r *Replayer) load() ([]Instruction, error) {
	f, err := os.Open(r.rollbackPath)
	if err != nil {
		return nil, fmt.Errorf("open rollback log: %w", err)
	}
	defer f.Close()

	var out []Instruction
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		in, err := ParseInstruction(line)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rollback log: %w", err)
	}

	return out, nil
}
