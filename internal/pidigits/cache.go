package pidigits

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// cacheVersion invalidates stored digits if the generator ever changes.
const cacheVersion = "1"

const digitsFile = "digits.txt"

// Cache stores computed π digits on disk. Requests shorter than the
// stored prefix are served from it; longer runs replace it.
type Cache struct {
	dir string
}

// NewCache creates a digit cache rooted at dir.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// NewDefaultCache creates the cache in the repository's .cache/pi
// directory, walking up from the working directory to the go.mod root.
func NewDefaultCache() (*Cache, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working dir: %w", err)
	}
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return NewCache(filepath.Join(dir, ".cache", "pi"))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			cwd, _ := os.Getwd()
			return NewCache(filepath.Join(cwd, ".cache", "pi"))
		}
		dir = parent
	}
}

// Get returns the first n cached digits, or false when the cache holds
// fewer than n digits or carries a stale version stamp.
func (c *Cache) Get(n int) ([]int, bool) {
	versionPath := filepath.Join(c.dir, ".version")
	versionData, err := os.ReadFile(versionPath)
	if err != nil || strings.TrimSpace(string(versionData)) != cacheVersion {
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(c.dir, digitsFile))
	if err != nil {
		return nil, false
	}
	stored := strings.TrimSpace(string(data))
	if len(stored) < n {
		return nil, false
	}

	digits := make([]int, 0, n)
	for _, r := range stored[:n] {
		if r < '0' || r > '9' {
			return nil, false
		}
		digits = append(digits, int(r-'0'))
	}
	return digits, true
}

// Put stores digits, keeping the longest run seen so far.
func (c *Cache) Put(digits []int) error {
	if existing, err := os.ReadFile(filepath.Join(c.dir, digitsFile)); err == nil {
		if len(strings.TrimSpace(string(existing))) >= len(digits) {
			return nil
		}
	}

	var sb strings.Builder
	sb.Grow(len(digits))
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	if err := os.WriteFile(filepath.Join(c.dir, digitsFile), []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write digits: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, ".version"), []byte(cacheVersion), 0644); err != nil {
		return fmt.Errorf("write cache version: %w", err)
	}
	return nil
}

// Clear removes all cached digits.
func (c *Cache) Clear() error {
	return os.RemoveAll(c.dir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
