package message

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
)

const (
	fileExt       = ".txt"
	MaxLineLength = 200 // Longer lines are truncated
)

// CommentPrefixes marks lines that are not messages
var CommentPrefixes = []string{"//", "#"}

// Loader discovers message files in a directory, one message per line
type Loader struct {
	dir    string
	logger log.Logger
	files  []string
}

// NewLoader creates a loader for dir, logger may be nil
func NewLoader(dir string, logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewLogger(io.Discard, "message")
	}
	return &Loader{dir: dir, logger: logger}
}

// Discover scans the directory for .txt files, skipping hidden ones
// A missing directory is not an error, it just yields no files
func (l *Loader) Discover() error {
	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		l.logger.Debug("message directory missing", "dir", l.dir)
		l.files = nil
		return nil
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return errors.Wrapf(err, "read message directory %s", l.dir)
	}

	l.files = l.files[:0]
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, fileExt) {
			l.files = append(l.files, filepath.Join(l.dir, name))
		}
	}
	l.logger.Debug("message files discovered", "dir", l.dir, "count", len(l.files))
	return nil
}

// Files returns the discovered file paths in directory order
func (l *Loader) Files() []string {
	return l.files
}

// LoadFile reads the messages of one file
func (l *Loader) LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open message file %s", path)
	}
	defer f.Close()

	msgs, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read message file %s", path)
	}
	return msgs, nil
}

// LoadInto replaces each file's messages in g, using the file name without extension as source id
// Returns the number of messages loaded
func (l *Loader) LoadInto(g *Group) (int, error) {
	total := 0
	for _, path := range l.files {
		msgs, err := l.LoadFile(path)
		if err != nil {
			return total, err
		}
		g.Replace(SourceID(path), msgs...)
		total += len(msgs)
	}
	return total, nil
}

// SourceID derives a group source id from a message file path
func SourceID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), fileExt)
}

// Parse reads messages from r, skipping blank and comment lines
func Parse(r io.Reader) ([]string, error) {
	var msgs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isComment(line) {
			continue
		}
		if len(line) > MaxLineLength {
			line = line[:MaxLineLength]
		}
		msgs = append(msgs, line)
	}
	return msgs, scanner.Err()
}

func isComment(line string) bool {
	for _, prefix := range CommentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
