package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shu-go/gli"
)

type globalCmd struct {
	Fragments string `cli:"fragments,f" help:"directory of policy fragments (default: .cx.d)"`
	Output    string `cli:"output,o" help:"guide file to write (default: COMMIT_GUIDELINES.md)"`
	Width     int    `cli:"width,w" help:"maximum line width of the commit format block"`

	Stdout bool `cli:"stdout" help:"print the guide instead of writing it"`

	Debug bool `cli:"debug" default:"false" help:"verbose logging to stderr"`

	Gen   genCmd   `cli:"generate,gen" help:"write the resolved policy for commitlint"`
	Watch watchCmd `cli:"watch" help:"render the guide again whenever a fragment changes"`
}

func (c globalCmd) Run() error {
	st, _ := c.settings()
	return c.render(st, c.logger())
}

// settings applies the command line over the discovered settings.
func (c globalCmd) settings() (Settings, string) {
	st, path := loadSettings()
	if c.Fragments != "" {
		st.Fragments = c.Fragments
	}
	if c.Output != "" {
		st.Output = c.Output
	}
	if c.Width > 0 {
		st.Width = c.Width
	}
	return st, path
}

func (c globalCmd) logger() zerolog.Logger {
	return newLogger(os.Stderr, c.Debug)
}

func (c globalCmd) resolve(st Settings, logger zerolog.Logger) Resolution {
	return ResolveStore(newDirStore(st.FragmentDir(), st.Pattern), logger)
}

func (c globalCmd) render(st Settings, logger zerolog.Logger) error {
	summary := Summarize(c.resolve(st, logger))
	r := Renderer{Width: st.Width}

	if c.Stdout {
		return r.Render(os.Stdout, summary)
	}

	out := st.OutputPath()
	if err := r.WriteFile(out, summary); err != nil {
		return err
	}
	logger.Info().Str("output", out).Msg("guide written")
	return nil
}

// Version is app version
var Version string

func main() {
	var usedSettings string
	if _, path := (globalCmd{}).settings(); path != "" {
		usedSettings = "\nsettings: " + path + "\n"
	}

	app := gli.NewWith(&globalCmd{})
	app.Name = "git-cxguide"
	app.Desc = "Resolve the commit message policy and write a guideline document"
	app.Version = Version
	app.Usage = `
# render COMMIT_GUIDELINES.md from the default policy and .cx.d/*.yaml
git cxguide

# preview
git cxguide --stdout

# export the resolved policy for commitlint
git cxguide gen .commitlintrc.json
` + usedSettings + `
# relocate fragments and guide
(.cx-guide.yaml: fragments, pattern, output, width)
(gitconfig: [cx] fragments=policy.d guide=docs/COMMITS.md)`
	app.Copyright = "(C) 2024 Shuhei Kubota"
	app.SuppressErrorOutput = true
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func in(s string, choices ...string) bool {
	if len(choices) == 0 {
		return false
	}

	for i := 0; i < len(choices); i++ {
		if strings.EqualFold(s, choices[i]) {
			return true
		}
	}

	return false
}
