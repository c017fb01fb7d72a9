package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/config"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/output"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage panel configuration",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (empty value unsets it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		err := config.Update(getBaseDir(), func(cfg *models.Config) error {
			return config.Set(cfg, key, val)
		})
		if err != nil {
			output.Error("%v", err)
			if strings.HasPrefix(err.Error(), "unknown config key") {
				fmt.Println("Valid keys:", strings.Join(config.Keys(), ", "))
			}
			return err
		}
		if val == "" {
			output.Success("Unset %s", key)
		} else {
			output.Success("Set %s = %s", key, val)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		val, err := config.Get(cfg, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List config values with environment overrides applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		values, err := configValues(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if jsonOut {
			return output.JSON(values)
		}
		for _, k := range config.Keys() {
			v := values[k]
			if v == "" {
				v = "(unset)"
			}
			fmt.Printf("%-14s %s\n", k, v)
		}
		return nil
	},
}

// configValues returns every key's effective value after PANEL_* overrides
func configValues(dir string) (map[string]string, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	config.ApplyEnv(cfg)
	values := make(map[string]string)
	for _, k := range config.Keys() {
		v, err := config.Get(cfg, k)
		if err != nil {
			return nil, err
		}
		values[k] = v
	}
	return values, nil
}

func init() {
	configListCmd.Flags().Bool("json", false, "output as JSON")
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}
