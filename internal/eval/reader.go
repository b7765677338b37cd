package eval

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// InputRecord is one line of the cases file. Error is set when the line
// could not be parsed or failed case validation.
type InputRecord struct {
	Case       Case
	LineNumber int
	Error      error
}

// Reader streams labeled cases from a JSONL source. Malformed lines are
// emitted as records with Error set so the caller can report them with
// their line number.
type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}

			var c Case
			if err := json.Unmarshal([]byte(line), &c); err != nil {
				record.Error = err
			} else if err := c.Validate(); err != nil {
				record.Error = err
			} else {
				record.Case = c
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read cases file")
		}
	}()

	return out
}
