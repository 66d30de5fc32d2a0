package vtui

import (
	"io"
	"log"
	"os"
)

// logger is silent unless SetLogOutput or Config.DebugLog points it
// somewhere. Never point it at the terminal the UI is drawing on.
var logger = log.New(io.Discard, "[vtui] ", log.Ltime|log.Lmicroseconds)

// SetLogOutput sends debug logging to w. Pass nil to silence it again.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logger.SetOutput(w)
}

// openDebugLog points the logger at path, returning a closer for the file.
func openDebugLog(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	SetLogOutput(f)
	return f, nil
}
