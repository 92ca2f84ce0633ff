package main

import (
	"errors"
	"fmt"

	"greenstack/internal/logger"
	"greenstack/internal/repository"

	"github.com/spf13/cobra"
)

var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Inspect or reset the stored network credentials offline",
}

var wifiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored SSID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		repos, closeDB, err := openRepos(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		creds, err := repos.Credentials.Load(cmd.Context())
		switch {
		case errors.Is(err, repository.ErrNotFound):
			fmt.Fprintln(cmd.OutOrStdout(), "no stored credentials; defaults will be used")
			return nil
		case err != nil:
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ssid: %s\n", creds.SSID)
		return nil
	},
}

var wifiClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		repos, closeDB, err := openRepos(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		if err := repos.Credentials.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "credentials cleared")
		return nil
	},
}

func init() {
	wifiCmd.AddCommand(wifiShowCmd, wifiClearCmd)
}

func openRepos(cmd *cobra.Command) (*repository.Repository, func(), error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	conn, err := openDB(cfg, logger.Nop())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return repository.NewRepository(conn), func() { _ = conn.Close() }, nil
}
