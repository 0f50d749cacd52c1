// Package export keeps the most recent generated artifact per session
// and persists it to disk. One artifact per session, last-write-wins;
// sessions never see each other's exports.
package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Artifact is the persisted rendering of a session's latest generation.
type Artifact struct {
	SessionID  string
	Markdown   string
	Path       string
	LatestPath string
	HTMLPath   string
	CreatedAt  time.Time
}

type Options struct {
	Dir         string
	HTMLPreview bool
	Logger      *slog.Logger
}

type Store struct {
	mu        sync.Mutex
	artifacts map[string]*Artifact

	dir         string
	htmlPreview bool
	logger      *slog.Logger
	now         func() time.Time
}

func NewStore(opts Options) *Store {
	dir := opts.Dir
	if dir == "" {
		dir = "output"
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Store{
		artifacts:   make(map[string]*Artifact),
		dir:         dir,
		htmlPreview: opts.HTMLPreview,
		logger:      logger,
		now:         time.Now,
	}
}

// Put stores markdown as the session's latest artifact and writes both
// the timestamped file and the overwritten "<session>-latest.md".
func (s *Store) Put(sessionID, markdown string) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("create output dir: %w", err)
	}

	key := sanitizeSession(sessionID)
	ts := s.now()

	art := &Artifact{
		SessionID:  sessionID,
		Markdown:   markdown,
		Path:       filepath.Join(s.dir, fmt.Sprintf("%s-%s.md", key, ts.Format("20060102-150405"))),
		LatestPath: filepath.Join(s.dir, key+"-latest.md"),
		CreatedAt:  ts,
	}

	if err := os.WriteFile(art.Path, []byte(markdown), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}
	if err := os.WriteFile(art.LatestPath, []byte(markdown), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write latest artifact: %w", err)
	}

	if s.htmlPreview {
		htmlPath := filepath.Join(s.dir, key+"-latest.html")
		html, err := RenderHTML(markdown)
		if err != nil {
			s.logger.Warn("html preview rendering failed", "err", err)
		} else if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
			s.logger.Warn("html preview write failed", "err", err)
		} else {
			art.HTMLPath = htmlPath
		}
	}

	s.artifacts[sessionID] = art
	s.logger.Debug("artifact stored", "session", sessionID, "path", art.Path)
	return *art, nil
}

// Get returns the session's latest in-memory artifact.
func (s *Store) Get(sessionID string) (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	art, ok := s.artifacts[sessionID]
	if !ok {
		return Artifact{}, false
	}
	return *art, true
}

// ReadLatest loads the session's latest markdown from disk, so callers
// in a fresh process (the CLI export command) can still export.
func (s *Store) ReadLatest(sessionID string) (string, string, error) {
	path := filepath.Join(s.dir, sanitizeSession(sessionID)+"-latest.md")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

// Evict drops in-memory artifacts older than maxAge and reports how
// many were removed. Files on disk are kept.
func (s *Store) Evict(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	n := 0
	for id, art := range s.artifacts {
		if art.CreatedAt.Before(cutoff) {
			delete(s.artifacts, id)
			n++
		}
	}
	return n
}

// RenderHTML converts the Markdown artifact to an HTML preview.
func RenderHTML(markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func sanitizeSession(sessionID string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, sessionID)
	if clean == "" {
		clean = "session"
	}
	return clean
}
