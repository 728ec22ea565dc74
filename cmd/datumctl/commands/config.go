package commands

import (
	"fmt"

	"github.com/danmuck/datumctl/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the datumctl config file",
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigValidateCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init [PATH]",
		Short:       "Write a config template",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.targetPath(args)
			if err := config.WriteTemplate(path, force); err != nil {
				return a.fail(true, err)
			}
			a.printer.Println(fmt.Sprintf("wrote config template to %s", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "validate [PATH]",
		Short:       "Validate a config file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.targetPath(args)
			if _, err := config.Load(path); err != nil {
				return a.fail(true, err)
			}
			a.printer.Println(fmt.Sprintf("validated config at %s", path))
			return nil
		},
	}
}

func (a *app) targetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultPath()
}
