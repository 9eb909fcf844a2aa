// package fmtio provides basic utilities to format input and output
package fmtio

import (
	"bytes"
	"io"
	"os"
)

func BytesFromStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

// StringFromStdin reads bytes from stdin, parsing them as a string without
// leading and trailing white space
func StringFromStdin() (string, error) {
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(b)), nil
}

// LinesFromStdin reads stdin and splits it into non-empty,
// whitespace-trimmed lines, in order. Used by commands that take one
// leaf input per line.
func LinesFromStdin() ([]string, error) {
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range bytes.Split(b, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lines = append(lines, string(line))
	}
	return lines, nil
}
