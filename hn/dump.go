package hn

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadDump reads a JSON array of stories from path.
func LoadDump(path string) ([]Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	var stories []Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("unmarshal dump %s: %w", path, err)
	}
	return stories, nil
}

// WriteDump persists stories as a JSON array at path, creating parent
// directories as needed. The file is written to a temp file and renamed so a
// failed write never leaves a truncated dump behind.
func WriteDump(path string, stories []Story) error {
	absOut, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("make abs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absOut), fs.ModePerm); err != nil {
		return fmt.Errorf("mkdir dump dir: %w", err)
	}

	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dump: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absOut), "*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), absOut); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
