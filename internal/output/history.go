package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ponymatrix/internal/prompt"
)

// Block is one parsed prompt block and the format it was stored in.
type Block struct {
	prompt.Record
	Format Format
}

// String renders the block in its stored format.
func (b Block) String() string {
	return Render(b.Record, b.Format)
}

// Records strips the stored formats.
func Records(blocks []Block) []prompt.Record {
	out := make([]prompt.Record, len(blocks))
	for i, b := range blocks {
		out[i] = b.Record
	}
	return out
}

// ReadAll parses every block in r. Both formats may be mixed in one file,
// since the format can change between runs.
func ReadAll(r io.Reader) ([]Block, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		out   []Block
		lines []string
	)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	for i := 0; i < len(lines); {
		if !strings.HasPrefix(lines[i], headerPrefix) {
			i++
			continue
		}
		rec := prompt.Record{Metadata: strings.TrimPrefix(lines[i], headerPrefix)}
		format := FormatBreak
		i++

		if i < len(lines) && lines[i] == positiveLabel {
			format = FormatFenced
			var pos, neg string
			pos, i = readFenced(lines, i+1)
			if i < len(lines) && lines[i] == negativeLabel {
				neg, i = readFenced(lines, i+1)
			}
			rec.Positive, rec.Negative = pos, neg
		} else {
			rec.Positive, i = readUntil(lines, i, func(l string) bool { return l == breakToken })
			if i < len(lines) && lines[i] == breakToken {
				i++
			}
			rec.Negative, i = readUntil(lines, i, func(l string) bool {
				return l == "" || strings.HasPrefix(l, headerPrefix)
			})
		}
		out = append(out, Block{Record: rec, Format: format})
	}

	return out, nil
}

// ReadFile parses the prompt file at path. A missing file yields no blocks.
func ReadFile(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open prompt file: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}

// readFenced reads a fenced body whose opening fence is lines[i] and
// returns the body and the index after the closing fence.
func readFenced(lines []string, i int) (string, int) {
	if i >= len(lines) || lines[i] != fence {
		return "", i
	}
	body, j := readUntil(lines, i+1, func(l string) bool { return l == fence })
	if j < len(lines) {
		j++
	}
	return body, j
}

func readUntil(lines []string, i int, stop func(string) bool) (string, int) {
	start := i
	for i < len(lines) && !stop(lines[i]) {
		i++
	}
	return strings.Join(lines[start:i], "\n"), i
}
