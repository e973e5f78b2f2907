// Package ingest reads statement batches from files or streams.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// Batch is one decoded statement batch. HasMore marks a partial export that
// the source will continue in a later batch.
type Batch struct {
	Statements []model.Statement
	HasMore    bool
}

// envelope is the wrapped export shape some event stores produce.
type envelope struct {
	Statements []model.Statement `json:"statements"`
	More       string            `json:"more,omitempty"`
}

// ReadFile decodes a batch from path. "-" reads standard input.
func ReadFile(path string) (Batch, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	return Read(f)
}

// Read decodes a batch from r. Three shapes are accepted: a bare JSON array
// of statements, a {"statements": [...], "more": "..."} envelope, and
// newline-delimited JSON with one statement per line. Statements are
// sanitized and missing ids are filled with fresh UUIDs.
func Read(r io.Reader) (Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to read batch: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Batch{}, nil
	}

	var batch Batch
	switch trimmed[0] {
	case '[':
		var stmts []model.Statement
		if err := json.Unmarshal(trimmed, &stmts); err != nil {
			return Batch{}, fmt.Errorf("failed to decode statement array: %w", err)
		}
		batch.Statements = stmts
	case '{':
		if looksLikeLines(trimmed) {
			stmts, err := readLines(trimmed)
			if err != nil {
				return Batch{}, err
			}
			batch.Statements = stmts
			break
		}
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Batch{}, fmt.Errorf("failed to decode statement envelope: %w", err)
		}
		if env.Statements == nil {
			// A lone statement object, not an envelope.
			var st model.Statement
			if err := json.Unmarshal(trimmed, &st); err != nil {
				return Batch{}, fmt.Errorf("failed to decode statement: %w", err)
			}
			batch.Statements = []model.Statement{st}
			break
		}
		batch.Statements = env.Statements
		batch.HasMore = env.More != ""
	default:
		return Batch{}, fmt.Errorf("unrecognized batch format: input starts with %q", trimmed[0])
	}

	batch.Statements = xapi.Sanitize(batch.Statements)
	for i := range batch.Statements {
		if batch.Statements[i].ID == "" {
			batch.Statements[i].ID = uuid.NewString()
		}
	}
	return batch, nil
}

// looksLikeLines distinguishes NDJSON from a single envelope object: NDJSON
// has a complete object on its first line.
func looksLikeLines(data []byte) bool {
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return false
	}
	line := bytes.TrimSpace(data[:idx])
	return json.Valid(line)
}

func readLines(data []byte) ([]model.Statement, error) {
	var stmts []model.Statement
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var st model.Statement
		if err := json.Unmarshal(line, &st); err != nil {
			return nil, fmt.Errorf("failed to decode statement on line %d: %w", lineNo, err)
		}
		stmts = append(stmts, st)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan batch lines: %w", err)
	}
	return stmts, nil
}
