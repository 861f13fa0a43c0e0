package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zarlcorp/zalias/internal/config"
	"github.com/zarlcorp/zalias/internal/geo"
	"github.com/zarlcorp/zalias/internal/names"
	"github.com/zarlcorp/zalias/internal/output"
	"github.com/zarlcorp/zalias/internal/profile"
	"github.com/zarlcorp/zalias/internal/render"
	"github.com/zarlcorp/zalias/internal/username"
)

// maxPasswordLength bounds --password-length; the generator itself takes
// any positive length.
const maxPasswordLength = 4096

type generateFlags struct {
	configPath string
	names      string

	withPassword   bool
	passwordLength int
	noSymbols      bool
	showPassword   bool

	save   string
	format string
	asJSON bool
	vault  bool

	country       string
	withBirthdate bool

	usernameStyle     string
	usernameSeparator string
	usernameSuffix    int
	usernameLength    int
}

func (g *generateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()

	f.BoolVar(&g.withPassword, "with-password", false, "include a generated password")
	f.IntVar(&g.passwordLength, "password-length", 64, "password length (requires --with-password)")
	f.BoolVar(&g.noSymbols, "no-password-symbols", false, "restrict symbols to "+`"-_+*@&%"`)
	f.BoolVar(&g.showPassword, "show-password", false, "print the password instead of [hidden]")

	f.StringVar(&g.save, "save", "", "also write the profile to this file")
	f.StringVar(&g.format, "format", "", "file format: text or json (requires --save; default from extension)")
	f.BoolVar(&g.asJSON, "json", false, "print JSON instead of text")
	f.BoolVar(&g.vault, "vault", false, "also store the profile in the encrypted vault")

	f.StringVar(&g.country, "country", "", "pick the city from this country")
	f.BoolVar(&g.withBirthdate, "with-birthdate", false, "include a birthdate and age")

	f.StringVar(&g.usernameStyle, "username-style", "derived", "derived or random")
	f.StringVar(&g.usernameSeparator, "username-separator", "_", `separator for derived usernames: "", ".", "_" or "-"`)
	f.IntVar(&g.usernameSuffix, "username-suffix", 4, "digits appended to derived usernames")
	f.IntVar(&g.usernameLength, "username-length", 10, "length of random usernames")
}

// check enforces flags that only make sense together.
func (g *generateFlags) check(cmd *cobra.Command) error {
	f := cmd.Flags()
	if f.Changed("format") && g.save == "" {
		return usagef("--format requires --save")
	}
	if f.Changed("password-length") && !g.withPassword {
		return usagef("--password-length requires --with-password")
	}
	if g.passwordLength > maxPasswordLength {
		return usagef("--password-length %d exceeds %d", g.passwordLength, maxPasswordLength)
	}
	return nil
}

// saveFormat picks the file format: explicit flag, then extension, then text.
func (g *generateFlags) saveFormat() (render.Format, error) {
	if g.format != "" {
		f, err := render.ParseFormat(g.format)
		if err != nil {
			return 0, usageError{err}
		}
		return f, nil
	}
	if f, ok := render.FormatFromPath(g.save); ok {
		return f, nil
	}
	return render.Text, nil
}

func runGenerate(cmd *cobra.Command, env Env, g *generateFlags) error {
	if err := g.check(cmd); err != nil {
		return err
	}

	var fileFormat render.Format
	if g.save != "" {
		var err error
		if fileFormat, err = g.saveFormat(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, g, cmd, env.Now)
	if err != nil {
		return err
	}

	p, err := gen.Generate()
	if err != nil {
		return err
	}

	display := render.Text
	if g.asJSON {
		display = render.JSON
	}
	var opts []render.Option
	if !g.showPassword {
		opts = append(opts, render.MaskPassword())
	}

	out, err := render.Render(p, display, opts...)
	if err != nil {
		return err
	}
	if err := output.Print(env.Stdout, out); err != nil {
		return err
	}

	if g.save != "" {
		data, err := render.Render(p, fileFormat)
		if err != nil {
			return err
		}
		if err := output.Save(g.save, data); err != nil {
			return err
		}
		slog.Info("saved profile", "path", g.save, "format", fileFormat)
	}

	if g.vault {
		s, err := env.OpenVault()
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.Save(p)
		if err != nil {
			return err
		}
		slog.Info("saved profile", "id", r.ShortID())
	}

	return nil
}

// Generator composes profiles from loaded datasets with fixed options.
type Generator struct {
	names     *names.Source
	geo       *geo.Catalog
	opts      []profile.Option
	birthdate bool
	now       func() time.Time
}

// Generate composes one profile.
func (g *Generator) Generate() (profile.Profile, error) {
	opts := g.opts
	if g.birthdate {
		opts = append(opts[:len(opts):len(opts)], profile.WithBirthdate(g.now()))
	}
	return profile.Compose(g.names, g.geo, opts...)
}

// NewGenerator builds a generator from the config file alone. The password
// is always generated so interactive callers can reveal it on demand.
func NewGenerator(configPath string) (*Generator, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	ns, err := loadNames(cfg.Names)
	if err != nil {
		return nil, err
	}
	gs, err := geo.Default()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}

	return &Generator{
		names:     ns,
		geo:       gs,
		opts:      []profile.Option{profile.WithPassword(policy), profile.WithUsername(scheme)},
		birthdate: cfg.Birthdate,
		now:       time.Now,
	}, nil
}

// newGenerator layers command-line flags over cfg.
func newGenerator(cfg *config.Config, g *generateFlags, cmd *cobra.Command, now func() time.Time) (*Generator, error) {
	f := cmd.Flags()

	namesPath := cfg.Names
	if g.names != "" {
		namesPath = g.names
	}
	ns, err := loadNames(namesPath)
	if err != nil {
		return nil, err
	}
	gs, err := geo.Default()
	if err != nil {
		return nil, err
	}

	var opts []profile.Option

	if f.Changed("country") {
		opts = append(opts, profile.WithCountry(g.country))
	}

	if g.withPassword {
		policy, err := cfg.Policy()
		if err != nil {
			return nil, err
		}
		if f.Changed("password-length") {
			policy.Length = g.passwordLength
		}
		if g.noSymbols {
			policy.UseSymbols = false
		}
		opts = append(opts, profile.WithPassword(policy))
	}

	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	if f.Changed("username-style") {
		if scheme.Style, err = username.ParseStyle(g.usernameStyle); err != nil {
			return nil, err
		}
	}
	if f.Changed("username-separator") {
		scheme.Separator = g.usernameSeparator
	}
	if f.Changed("username-suffix") {
		scheme.Suffix = g.usernameSuffix
	}
	if f.Changed("username-length") {
		scheme.Length = g.usernameLength
	}
	opts = append(opts, profile.WithUsername(scheme))

	return &Generator{
		names:     ns,
		geo:       gs,
		opts:      opts,
		birthdate: g.withBirthdate || cfg.Birthdate,
		now:       now,
	}, nil
}

// loadConfig reads an explicit config path strictly, or the default path
// if it exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}
	return config.Load(config.DefaultPath(), false)
}

// loadNames reads a YAML name list, or the bundled list when path is empty.
func loadNames(path string) (*names.Source, error) {
	if path == "" {
		return names.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	raw, err := names.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src, err := names.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}
