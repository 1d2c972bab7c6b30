package location

import (
	"sort"
	"strings"
)

// Forge is a hosted git service with a predictable raw-file URL scheme.
type Forge string

const (
	Bitbucket Forge = "bitbucket"
	Codeberg  Forge = "codeberg"
	GitHub    Forge = "github"
	GitLab    Forge = "gitlab"
)

// DefaultForgeFile is opened when a forge request names no file.
const DefaultForgeFile = "README.md"

var rawTemplates = map[Forge]string{
	Bitbucket: "https://bitbucket.org/{owner}/{repository}/raw/{branch}/{file}",
	Codeberg:  "https://codeberg.org/{owner}/{repository}/raw/branch/{branch}/{file}",
	GitHub:    "https://raw.githubusercontent.com/{owner}/{repository}/{branch}/{file}",
	GitLab:    "https://gitlab.com/{owner}/{repository}/-/raw/{branch}/{file}",
}

var forgeAliases = map[string]Forge{
	"bb": Bitbucket,
	"cb": Codeberg,
	"gh": GitHub,
	"gl": GitLab,
}

// Forges returns the supported forges in name order.
func Forges() []Forge {
	forges := make([]Forge, 0, len(rawTemplates))
	for f := range rawTemplates {
		forges = append(forges, f)
	}
	sort.Slice(forges, func(i, j int) bool { return forges[i] < forges[j] })
	return forges
}

// LookupForge maps a canonical forge name or its two-letter alias to a
// Forge. Matching ignores case.
func LookupForge(token string) (Forge, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if f, ok := forgeAliases[token]; ok {
		return f, true
	}
	if _, ok := rawTemplates[Forge(token)]; ok {
		return Forge(token), true
	}
	return "", false
}

// Alias returns the two-letter shorthand for f.
func (f Forge) Alias() string {
	for alias, forge := range forgeAliases {
		if forge == f {
			return alias
		}
	}
	return ""
}

// RawURL fills in f's raw-content template. It returns false for an
// unknown forge.
func (f Forge) RawURL(owner, repository, branch, file string) (string, bool) {
	tmpl, ok := rawTemplates[f]
	if !ok {
		return "", false
	}
	return strings.NewReplacer(
		"{owner}", owner,
		"{repository}", repository,
		"{branch}", branch,
		"{file}", strings.TrimPrefix(file, "/"),
	).Replace(tmpl), true
}

// ForgeRequest asks for a file from a repository on a forge. Branch and
// Filename are optional; empty means not given.
type ForgeRequest struct {
	Forge      Forge
	Owner      string
	Repository string
	Branch     string
	Filename   string
}

// File returns the requested filename, or DefaultForgeFile.
func (r ForgeRequest) File() string {
	if r.Filename == "" {
		return DefaultForgeFile
	}
	return r.Filename
}

// Branches returns the branches to try, in order.
func (r ForgeRequest) Branches() []string {
	if r.Branch != "" {
		return []string{r.Branch}
	}
	return []string{"main", "master"}
}

func (r ForgeRequest) String() string {
	var sb strings.Builder
	sb.WriteString(string(r.Forge))
	sb.WriteString(" ")
	sb.WriteString(r.Owner)
	sb.WriteString("/")
	sb.WriteString(r.Repository)
	if r.Branch != "" {
		sb.WriteString(":" + r.Branch)
	}
	if r.Filename != "" {
		sb.WriteString(" " + r.Filename)
	}
	return sb.String()
}
