package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/plumbing/format/config"
	"github.com/shu-go/findcfg"
	"gopkg.in/yaml.v3"
)

const (
	userConfigFolder = "git-cx"

	defaultSettingsFileName = ".cx-guide"
	defaultFragmentDir      = ".cx.d"
	defaultOutputFileName   = "COMMIT_GUIDELINES.md"

	configSection   = "cx"
	configFragments = "fragments"
	configGuide     = "guide"
)

type Settings struct {
	Fragments string `json:"fragments" yaml:"fragments"`
	Pattern   string `json:"pattern" yaml:"pattern"`
	Output    string `json:"output" yaml:"output"`
	Width     int    `json:"width" yaml:"width"`

	root string
}

func defaultSettings() Settings {
	return Settings{
		Fragments: defaultFragmentDir,
		Pattern:   defaultFragmentPattern,
		Output:    defaultOutputFileName,
		Width:     defaultWidth,
	}
}

// FragmentDir is the fragment directory, absolute.
func (s Settings) FragmentDir() string {
	return s.abs(s.Fragments)
}

// OutputPath is the guide destination, absolute.
func (s Settings) OutputPath() string {
	return s.abs(s.Output)
}

func (s Settings) abs(p string) string {
	if p == "" || filepath.IsAbs(p) || s.root == "" {
		return p
	}
	return filepath.Join(s.root, p)
}

// loadSettings layers defaults, the settings file and the [cx] git config
// section. The returned path is the settings file used, if any.
func loadSettings() (Settings, string) {
	st := defaultSettings()

	var repos *git.Repository
	if r, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		repos = r
		if wt, err := r.Worktree(); err == nil {
			st.root = wt.Filesystem.Root()
		}
	}
	if st.root == "" {
		st.root, _ = os.Getwd()
	}

	finder := findcfg.New(
		findcfg.Name(defaultSettingsFileName),
		findcfg.YAML(),
		findcfg.JSON(),
		findcfg.Dir(st.root),
		findcfg.UserConfigDir(userConfigFolder),
		findcfg.ExecutableDir(),
	)
	var used string
	if found := finder.Find(); found != nil {
		if err := tryReadSettingsFile(found.Path, &st); err == nil {
			used = found.Path
		}
	}

	if repos != nil {
		if v := getGitConfig(repos, configFragments); v != nil {
			st.Fragments = *v
		}
		if v := getGitConfig(repos, configGuide); v != nil {
			st.Output = *v
		}
	}

	return st, used
}

func tryReadSettingsFile(filename string, st *Settings) error {
	if s, err := os.Stat(filename); err != nil || s.IsDir() {
		return err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if in(filepath.Ext(filename), ".json") {
		return json.Unmarshal(content, st)
	}
	return yaml.Unmarshal(content, st)
}

func getGitConfig(repos *git.Repository, key string) *string {
	config, err := repos.Config()
	if err != nil {
		return nil
	}

	var ss *gitconfig.Section
	for _, s := range config.Raw.Sections {
		if s.Name == configSection {
			ss = s
		}
	}
	if ss == nil {
		return nil
	}

	if v := ss.Options.Get(key); v != "" {
		return &v
	}
	return nil
}
