package persistence

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const answerFilePerm = 0644

// WriteLines replaces the contents of filePath with lines, each terminated by "\n".
// The file is created if it does not exist; missing parent directories are not created.
func WriteLines(filePath string, lines []string) (err error) {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, answerFilePerm) // #nosec G304 -- answer path is operator configuration
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", filePath, closeErr)
		}
	}()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("failed to write to %s: %w", filePath, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write to %s: %w", filePath, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filePath, err)
	}
	return nil
}

// ReadLines returns the lines of filePath without their terminators.
func ReadLines(filePath string) ([]string, error) {
	file, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer closeQuietly(file, filePath)

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return lines, nil
}
