// Package command parses the text typed into hike's command line into a
// typed request.
package command

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vidyasagar/hike/internal/location"
)

// ErrUnrecognizedInput is returned when no recognizer accepts the input.
var ErrUnrecognizedInput = errors.New("unable to handle that input")

// Request is the result of parsing command line input. It is one of
// OpenFile, OpenFrom, OpenURL, ChangeDirectory, OpenFromForge or Builtin.
type Request interface {
	request()
}

// OpenFile asks to view a local file.
type OpenFile struct {
	Path string
}

// OpenFrom asks to browse for a file starting in Dir.
type OpenFrom struct {
	Dir string
}

// OpenURL asks to view a remote document.
type OpenURL struct {
	URL location.Location
}

// ChangeDirectory asks to move the local browsing root.
type ChangeDirectory struct {
	Dir string
}

// OpenFromForge asks to view a file hosted on a forge.
type OpenFromForge struct {
	location.ForgeRequest
}

// Builtin asks for one of the fixed application actions.
type Builtin struct {
	Action Action
}

func (OpenFile) request()        {}
func (OpenFrom) request()        {}
func (OpenURL) request()         {}
func (ChangeDirectory) request() {}
func (OpenFromForge) request()   {}
func (Builtin) request()         {}

type recognizer func(input string) (Request, bool)

// recognizers run in order and the first match wins. Exact paths come
// before URLs and forge shorthand so an existing file is always opened.
var recognizers = []recognizer{
	openFile,
	openFrom,
	openURL,
	changeDirectory,
	openFromForge,
	builtin,
}

// Parse turns command line input into a Request.
func Parse(input string) (Request, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrUnrecognizedInput)
	}
	for _, recognize := range recognizers {
		if req, ok := recognize(input); ok {
			return req, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedInput, strings.TrimSpace(input))
}

func openFile(input string) (Request, bool) {
	p := location.ExpandHome(strings.TrimSpace(input))
	if !location.IsFile(p) {
		return nil, false
	}
	return OpenFile{Path: absolute(p)}, true
}

func openFrom(input string) (Request, bool) {
	p := location.ExpandHome(strings.TrimSpace(input))
	if !location.IsDir(p) {
		return nil, false
	}
	return OpenFrom{Dir: absolute(p)}, true
}

func openURL(input string) (Request, bool) {
	loc, err := location.ParseURL(input)
	if err != nil {
		return nil, false
	}
	return OpenURL{URL: loc}, true
}

var chdirPattern = regexp.MustCompile(`^\s*(chdir|cd)\s+(?P<directory>\S+)\s*$`)

func changeDirectory(input string) (Request, bool) {
	m := chdirPattern.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}
	dir := location.ExpandHome(m[chdirPattern.SubexpIndex("directory")])
	if !location.IsDir(dir) {
		return nil, false
	}
	return ChangeDirectory{Dir: absolute(dir)}, true
}

var (
	forgeWithoutBranch = regexp.MustCompile(`^(?P<owner>[^/ ]+)[/ ](?P<repo>[^ :]+)(?: +(?P<file>.+))?$`)
	forgeWithBranch    = regexp.MustCompile(`^(?P<owner>[^/ ]+)[/ ](?P<repo>[^ :]+):(?P<branch>[^ ]+)(?: +(?P<file>.+))?$`)
)

func openFromForge(input string) (Request, bool) {
	token, args, _ := strings.Cut(strings.TrimSpace(input), " ")
	forge, ok := location.LookupForge(token)
	if !ok {
		return nil, false
	}
	args = strings.TrimSpace(args)

	if m := forgeWithoutBranch.FindStringSubmatch(args); m != nil {
		return OpenFromForge{location.ForgeRequest{
			Forge:      forge,
			Owner:      group(forgeWithoutBranch, m, "owner"),
			Repository: group(forgeWithoutBranch, m, "repo"),
			Filename:   group(forgeWithoutBranch, m, "file"),
		}}, true
	}
	if m := forgeWithBranch.FindStringSubmatch(args); m != nil {
		return OpenFromForge{location.ForgeRequest{
			Forge:      forge,
			Owner:      group(forgeWithBranch, m, "owner"),
			Repository: group(forgeWithBranch, m, "repo"),
			Branch:     group(forgeWithBranch, m, "branch"),
			Filename:   group(forgeWithBranch, m, "file"),
		}}, true
	}
	return nil, false
}

func group(re *regexp.Regexp, m []string, name string) string {
	return strings.TrimSpace(m[re.SubexpIndex(name)])
}

func absolute(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
