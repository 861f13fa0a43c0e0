package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zarlcorp/zalias/internal/geo"
	"github.com/zarlcorp/zalias/internal/store"
)

func countriesCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "countries [COUNTRY]",
		Short: "List bundled countries, or the cities of one country",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := geo.Default()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				for _, name := range c.Countries() {
					fmt.Fprintln(env.Stdout, name)
				}
				return nil
			}

			country, ok := c.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", geo.ErrUnknownCountry, args[0])
			}
			for _, city := range c.Cities(country) {
				fmt.Fprintln(env.Stdout, city)
			}
			return nil
		},
	}
}

func categoriesCmd(env Env, g *generateFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List name categories and their sizes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			path := cfg.Names
			if g.names != "" {
				path = g.names
			}

			src, err := loadNames(path)
			if err != nil {
				return err
			}
			for _, cat := range src.Categories() {
				fmt.Fprintf(env.Stdout, "%-28s %d\n", cat, len(src.Names(cat)))
			}
			return nil
		},
	}
}

func listCmd(env Env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles saved in the vault",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.OpenVault()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List()
			if err != nil {
				return err
			}

			if asJSON {
				if records == nil {
					records = []store.Record{}
				}
				return printJSON(env.Stdout, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(env.Stdout, "no saved profiles")
				return nil
			}
			for _, r := range records {
				printRecord(env.Stdout, r)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func forgetCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "forget ID",
		Short: "Delete a saved profile by ID or unique ID prefix",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := env.OpenVault()
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := s.Find(args[0])
			if err != nil {
				return err
			}
			if err := s.Delete(r.ID); err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "deleted %s\n", r.ShortID())
			return nil
		},
	}
}

func versionCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(env.Stdout, "zalias %s\n", env.Version)
		},
	}
}

func printRecord(w io.Writer, r store.Record) {
	p := r.Profile
	fmt.Fprintf(w, "  %-8s  %-24s %-20s %-28s %s\n",
		r.ShortID(),
		p.Name,
		p.Username,
		p.City+", "+p.Country,
		r.CreatedAt.Local().Format("2006-01-02"),
	)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
