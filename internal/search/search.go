// Package search implements regular-expression content search over files and trees.
package search

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Cyclone1070/msh/internal/config"
	"github.com/Cyclone1070/msh/internal/gitutil"
)

// IgnoreFactory builds an ignore matcher for a search root.
type IgnoreFactory func(root string) (IgnoreMatcher, error)

// GitignoreFactory loads the .gitignore at each recursive search root.
func GitignoreFactory(fs fileSystem) IgnoreFactory {
	return func(root string) (IgnoreMatcher, error) {
		m, err := gitutil.NewIgnoreMatcher(root, fs)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// Searcher runs grep requests.
type Searcher struct {
	fs       fileSystem
	detector binaryDetector
	cfg      config.SearchConfig
	ignore   IgnoreFactory
}

// NewSearcher creates a Searcher. ignore may be nil, in which case nothing is ignored
// even if the config asks for it.
func NewSearcher(fs fileSystem, detector binaryDetector, cfg config.SearchConfig, ignore IgnoreFactory) *Searcher {
	return &Searcher{fs: fs, detector: detector, cfg: cfg, ignore: ignore}
}

// Grep searches req.Path for lines matching req.Pattern.
// Files that are binary or not valid UTF-8 are skipped silently.
func (s *Searcher) Grep(req Request) (*Response, error) {
	expr := req.Pattern
	if req.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: req.Pattern, Cause: err}
	}

	info, err := s.fs.Stat(req.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileMissingError{Path: req.Path}
		}
		return nil, &StatError{Path: req.Path, Cause: err}
	}

	resp := &Response{Matches: []Match{}}

	switch {
	case !info.IsDir():
		s.searchFile(re, req.Path, filepath.Base(req.Path), resp)
	case req.Recursive:
		var matcher IgnoreMatcher
		if s.cfg.RespectGitignore && s.ignore != nil {
			if matcher, err = s.ignore(req.Path); err != nil {
				return nil, err
			}
		}
		if err := s.walk(re, req.Path, req.Path, req.Cwd, matcher, resp); err != nil {
			return nil, err
		}
	default:
		entries, err := s.fs.ListDir(req.Path)
		if err != nil {
			return nil, &StatError{Path: req.Path, Cause: err}
		}
		for _, entry := range entries {
			path := filepath.Join(req.Path, entry.Name())
			if !s.isRegular(path, entry) {
				continue
			}
			s.searchFile(re, path, entry.Name(), resp)
		}
	}

	return resp, nil
}

func (s *Searcher) walk(re *regexp.Regexp, root, dir, cwd string, matcher IgnoreMatcher, resp *Response) error {
	entries, err := s.fs.ListDir(dir)
	if err != nil {
		// Unreadable subdirectories are skipped; only the root must be listable.
		if dir == root {
			return &StatError{Path: dir, Cause: err}
		}
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if matcher != nil {
			rel, _ := filepath.Rel(root, path)
			if entry.Name() == ".git" || matcher.ShouldIgnore(rel, entry.IsDir()) {
				continue
			}
		}

		if entry.IsDir() {
			if err := s.walk(re, root, path, cwd, matcher, resp); err != nil {
				return err
			}
			continue
		}
		if !s.isRegular(path, entry) {
			continue
		}

		display, err := filepath.Rel(cwd, path)
		if err != nil {
			display = path
		}
		s.searchFile(re, path, display, resp)
	}
	return nil
}

// isRegular follows symlinks so linked files are searched like the files they point to.
func (s *Searcher) isRegular(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := s.fs.Stat(path)
		if err != nil {
			return false
		}
		return target.Mode().IsRegular()
	}
	return info.Mode().IsRegular()
}

func (s *Searcher) searchFile(re *regexp.Regexp, path, display string, resp *Response) {
	matches, err := s.scanFile(re, path, display)
	if err != nil {
		var decodeErr *decodeError
		if errors.As(err, &decodeErr) {
			resp.Skipped++
		}
		return
	}
	resp.Matches = append(resp.Matches, matches...)
}

func (s *Searcher) scanFile(re *regexp.Regexp, path, display string) ([]Match, error) {
	content, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if s.detector.IsBinaryContent(content) || !utf8.Valid(content) {
		return nil, &decodeError{Path: path}
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), s.cfg.MaxScanTokenSize)

	var matches []Match
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !re.MatchString(line) {
			continue
		}
		if len(line) > s.cfg.MaxLineLength {
			line = truncate(line, s.cfg.MaxLineLength)
		}
		matches = append(matches, Match{
			Display: display,
			Line:    lineNum,
			Content: trimLineEnd(line),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &decodeError{Path: path}
	}
	return matches, nil
}

// truncate cuts line to at most n bytes without splitting a rune.
func truncate(line string, n int) string {
	for n > 0 && !utf8.RuneStart(line[n]) {
		n--
	}
	return line[:n] + "..."
}

func trimLineEnd(line string) string {
	return strings.TrimRight(line, " \t\r")
}
