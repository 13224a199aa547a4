// Package logging writes SchemeGuardian's append-only audit trail
// (spec §6.5): one line per event, each stamped with a TAI64N label,
// mirrored through go-zero's logx so the same lines also reach whatever
// sink the embedding application's logx.MustSetup configured.
package logging

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/schemeguardian/tai64"
)

// DefaultFile is the conventional audit log location, relative to the
// process's working directory.
const DefaultFile = "./SchemeGuardian/SchemeGuardian.log"

// Kind tags the category of a logged event, mirroring the error taxonomy
// in spec §7.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindStore      Kind = "store"
	KindGC         Kind = "gc"
	KindConfig     Kind = "config"
	KindPassphrase Kind = "passphrase"
)

// Writer appends one line per event to an underlying file, formatted as
// "<TAI64N label> <run-id> <kind> <message> [cause=<err>]\n". The run ID
// is a fresh UUID per Writer, letting an operator grep one process's
// lines out of a log file shared by several concurrently running
// instances.
type Writer struct {
	mu    sync.Mutex
	file  *os.File
	runID uuid.UUID
}

// Open opens (creating if necessary) the append-only log file at path.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: failed to open %s: %w", path, err)
	}
	return &Writer{file: f, runID: uuid.New()}, nil
}

// Log appends a single event line and mirrors it through logx at the
// appropriate level: Errorf when cause is non-nil, Infof otherwise.
func (w *Writer) Log(kind Kind, message string, cause error) {
	line := fmt.Sprintf("%s %s %s %s", tai64.Now().String(), w.runID, kind, message)
	if cause != nil {
		line += fmt.Sprintf(" cause=%v", cause)
	}

	w.mu.Lock()
	_, writeErr := fmt.Fprintln(w.file, line)
	w.mu.Unlock()

	if writeErr != nil {
		logx.Errorf("logging: failed to append audit line: %v", writeErr)
	}
	if cause != nil {
		logx.Errorf("%s", line)
	} else {
		logx.Infof("%s", line)
	}
}

// Close releases the underlying file handle.
func (w *Writer) Close() error {
	return w.file.Close()
}
