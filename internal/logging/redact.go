// Package logging obfuscates personal data in log output.
//
// Log lines written as "field=value" pairs have the value of every
// configured field replaced before reaching the underlying writer:
//
//	log.SetOutput(logging.NewRedactingWriter(os.Stderr, []string{"email", "password"}))
//	log.Printf("login failed email=%s; ip=%s", email, ip) // email=***; ip=127.0.0.1
package logging

import (
	"io"
	"regexp"
	"strings"
	"sync"
)

// Redaction replaces redacted values.
const Redaction = "***"

// lineSeparators end a value in log lines: ';' or whitespace.
const lineSeparators = "; \t\r\n"

// FilterDatum replaces the value of each field in message with redaction.
// A value runs until the next character of separator. Only whole field
// names match, so "backup_email=" is left alone when filtering "email".
func FilterDatum(fields []string, redaction, message, separator string) string {
	if len(fields) == 0 {
		return message
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	re := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)=[^` + regexp.QuoteMeta(separator) + `]+`)
	return re.ReplaceAllString(message, "${1}="+strings.ReplaceAll(redaction, "$", "$$"))
}

// RedactingWriter passes every write through FilterDatum before it reaches
// the wrapped writer.
type RedactingWriter struct {
	mu     sync.Mutex
	out    io.Writer
	fields []string
}

// NewRedactingWriter wraps out. With no fields, writes pass through unchanged.
func NewRedactingWriter(out io.Writer, fields []string) *RedactingWriter {
	return &RedactingWriter{out: out, fields: fields}
}

// Write reports len(p) on success so callers such as log.Logger do not
// treat the shorter redacted line as a short write.
func (w *RedactingWriter) Write(p []byte) (int, error) {
	filtered := FilterDatum(w.fields, Redaction, string(p), lineSeparators)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, filtered); err != nil {
		return 0, err
	}
	return len(p), nil
}
