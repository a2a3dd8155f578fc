package logbuf

import (
	"bytes"
	"fmt"
	"strings"
)

// Export renders the retained entries as newline-delimited human-readable
// text, one block per entry:
//
//	[<timestamp>] [<LEVEL>] [<category>] <message>
//	  Data: <payload JSON>
//
// Blocks are separated by a blank line. This is the flat artifact a human
// downloads for bug reports. Empty when the buffer is disabled or holds no
// entries.
func (b *Buffer) Export() []byte {
	if !b.cfg.Enabled {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	var buf bytes.Buffer
	for i, e := range b.entries {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s] [%s] [%s] %s\n", e.Timestamp, strings.ToUpper(string(e.Level)), e.Category, e.Message)
		if len(e.Data) > 0 {
			fmt.Fprintf(&buf, "  Data: %s\n", e.Data)
		}
	}
	return buf.Bytes()
}
