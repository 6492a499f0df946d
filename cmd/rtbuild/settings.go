package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rtbuild/internal/compose"
	"rtbuild/internal/config"
	"rtbuild/internal/target"
	"rtbuild/internal/targetspec"
	"rtbuild/internal/toolchain"
)

// Environment variables consulted when the matching flag is not set.
const (
	envTarget     = "TARGET"
	envHost       = "HOST"
	envTargetPath = "RUST_TARGET_PATH"
)

// settingsFlags are the raw persistent flag values.
type settingsFlags struct {
	configPath  string
	target      string
	host        string
	targetPath  string
	floatPolicy string
}

// settings is everything a command needs to resolve one target.
type settings struct {
	cfg        config.Config
	env        toolchain.Env
	target     string
	host       string
	targetPath string
	policy     compose.FloatPolicy
}

func readSettingsFlags(flags *pflag.FlagSet) (settingsFlags, error) {
	var (
		out settingsFlags
		err error
	)
	if out.configPath, err = flags.GetString("config"); err != nil {
		return out, err
	}
	if out.target, err = flags.GetString("target"); err != nil {
		return out, err
	}
	if out.host, err = flags.GetString("host"); err != nil {
		return out, err
	}
	if out.targetPath, err = flags.GetString("target-path"); err != nil {
		return out, err
	}
	if out.floatPolicy, err = flags.GetString("float-policy"); err != nil {
		return out, err
	}
	return out, nil
}

// resolveSettings merges flags, environment and rtbuild.toml. Flags win
// over the environment; --float-policy wins over the config file.
func resolveSettings(f settingsFlags, env toolchain.Env, cfg config.Config, requireHost bool) (settings, error) {
	s := settings{cfg: cfg, env: env}

	s.target = firstNonEmpty(f.target, toolchain.Value(env, envTarget))
	if s.target == "" {
		return s, fmt.Errorf("%s not set (use --target or export %s)", envTarget, envTarget)
	}
	s.host = firstNonEmpty(f.host, toolchain.Value(env, envHost))
	if requireHost && s.host == "" {
		return s, fmt.Errorf("%s not set (use --host or export %s)", envHost, envHost)
	}
	s.targetPath = firstNonEmpty(f.targetPath, toolchain.Value(env, envTargetPath))

	policy, err := compose.ParseFloatPolicy(firstNonEmpty(f.floatPolicy, cfg.Build.FloatPolicy))
	if err != nil {
		return s, err
	}
	s.policy = policy
	return s, nil
}

// loadSettings reads flags, process environment and the config file.
func loadSettings(cmd *cobra.Command, requireHost bool) (settings, error) {
	f, err := readSettingsFlags(cmd.Root().PersistentFlags())
	if err != nil {
		return settings{}, err
	}
	cfg, err := config.Load(f.configPath, ".")
	if err != nil {
		return settings{}, err
	}
	return resolveSettings(f, toolchain.OSEnv{}, cfg, requireHost)
}

// descriptor loads the target spec from the working directory, then the
// search path.
func (s settings) descriptor() (*target.Descriptor, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return target.Load(s.target, targetspec.NewStore(cwd, s.targetPath))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
