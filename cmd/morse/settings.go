package morse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/config"
	"github.com/spf13/cobra"
)

type ConfigParams struct {
	Init bool `help:"Write the default config file if it does not exist yet." default:"false"`
}

func ConfigCmd() *cobra.Command {
	return boa.CmdT[ConfigParams]{
		Use:         "config",
		Short:       "Show the effective configuration",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ConfigParams, cmd *cobra.Command, args []string) {
			if err := runConfig(os.Stdout, params); err != nil {
				fail("config", err)
			}
		},
	}.ToCobra()
}

func runConfig(stdout io.Writer, params *ConfigParams) error {
	path := config.ConfigPath()
	if params.Init {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.Save(config.DefaultConfig()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "# %s\n%s\n", path, data)
	return nil
}

func configPathHint() string {
	return config.ConfigPath()
}
