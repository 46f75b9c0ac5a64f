package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/medrfq/internal/core/domain"
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed defaults/*.txt
var defaultFiles embed.FS

// placeholders is the number of %s verbs each prompt must carry.
var placeholders = map[string]int{
	driven.PromptReviewSystem: 0,
	driven.PromptReviewUser:   1,
}

// PromptStore serves the reviewer prompts from <dir>/<name>.txt. Missing,
// empty or malformed files fall back to the built-in prompt.
//
// Nothing touches the disk until the first Load, which writes any missing
// default files so users have something to edit.
type PromptStore struct {
	dir string

	seedOnce sync.Once

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore creates a prompt store rooted at dir, or ~/.medrfq/prompts
// when dir is empty.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, DefaultDirName, "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

// Load returns the named prompt. Unknown names return domain.ErrNotFound.
func (s *PromptStore) Load(name string) (string, error) {
	want, known := placeholders[name]
	if !known {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	s.seedOnce.Do(s.seed)

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.read(name, want)
	if err != nil {
		logger.Warn("prompt %s: %v; using built-in prompt", name, err)
		if prompt, err = builtin(name); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	s.cache[name] = prompt
	s.mu.Unlock()
	return prompt, nil
}

// Reload drops cached prompts so edits are picked up.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

func (s *PromptStore) read(name string, want int) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("file is empty")
	}
	if got := strings.Count(prompt, "%s"); got != want {
		return "", fmt.Errorf("want %d %%s placeholder(s), found %d", want, got)
	}
	return prompt, nil
}

// seed writes the built-in prompts that are missing from the directory.
// Failures only mean the built-in prompts are used.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Warn("prompt directory: %v", err)
		return
	}
	for name := range placeholders {
		path := s.path(name)
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		data, err := defaultFiles.ReadFile("defaults/" + name + ".txt")
		if err != nil {
			continue
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			logger.Warn("write default prompt %s: %v", name, err)
		}
	}
}

func builtin(name string) (string, error) {
	data, err := defaultFiles.ReadFile("defaults/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	return strings.TrimSpace(string(data)), nil
}
