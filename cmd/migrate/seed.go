package main

import (
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *options) *cobra.Command {
	var (
		files []string
		list  bool
	)

	characters := &CharacterSeeder{}
	registry := Registry{}
	registry.Register(characters)

	cmd := &cobra.Command{
		Use:   "seed [SEEDER...]",
		Short: "Run seeders in a single transaction",
		Long: `seed runs the named seeders, or every seeder when none is named.
The characters seeder reads the configured host character file unless
--file is given.`,
		Example: `  migrate seed
  migrate seed characters --file characters/eliza.yaml --file characters/ada.json
  migrate seed --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				cmd.Println("Available seeders:")
				for _, s := range registry.List() {
					cmd.Printf("  - %s: %s\n", s.Name(), s.Description())
				}
				return nil
			}

			characters.Files = files
			if len(characters.Files) == 0 {
				characters.Files = []string{opts.cfg.Host.CharacterFile}
			}

			ctx := cmd.Context()
			db, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := registry.Run(ctx, db, args...); err != nil {
				return err
			}
			cmd.Println("seeding completed")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "character file to seed (repeatable)")
	cmd.Flags().BoolVar(&list, "list", false, "list available seeders")
	return cmd
}
