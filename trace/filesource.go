package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrBadRecord is returned when a trace line cannot be parsed.
var ErrBadRecord = errors.New("malformed trace record")

// A FileSource reads accesses from a trace file. Each line has the form
//
//	# <type> <hex-address> <instructions>
//
// where type is 0 for a read and 1 for a write, e.g. "# 1 7f5a3c10 12".
// Blank lines are skipped.
type FileSource struct {
	file    *os.File
	scanner *bufio.Scanner
	lineNum int
}

// NewFileSource opens a trace file for reading.
func NewFileSource(path string) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file: %w", err)
	}

	s := &FileSource{
		file:    file,
		scanner: bufio.NewScanner(file),
	}

	return s, nil
}

// Next returns the next access in the file, or io.EOF when the file is
// exhausted.
func (s *FileSource) Next() (Access, error) {
	for s.scanner.Scan() {
		s.lineNum++

		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		access, err := ParseLine(line)
		if err != nil {
			return Access{}, fmt.Errorf("line %d: %w", s.lineNum, err)
		}

		return access, nil
	}

	if err := s.scanner.Err(); err != nil {
		return Access{}, err
	}

	return Access{}, io.EOF
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// ParseLine parses one trace line into an access.
func ParseLine(line string) (Access, error) {
	var accessType int
	var address uint64
	var instructions uint32

	_, err := fmt.Sscanf(line, "# %d %x %d",
		&accessType, &address, &instructions)
	if err != nil {
		return Access{}, fmt.Errorf("%w: %q", ErrBadRecord, line)
	}

	access := Access{
		IsWrite:      accessType != 0,
		Address:      address,
		Instructions: instructions,
	}

	return access, nil
}

// FormatLine renders an access in the trace file format parsed by
// ParseLine.
func FormatLine(a Access) string {
	accessType := 0
	if a.IsWrite {
		accessType = 1
	}

	return fmt.Sprintf("# %d %x %d", accessType, a.Address, a.Instructions)
}
