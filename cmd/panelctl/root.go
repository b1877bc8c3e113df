package panelctl

import (
	"fmt"
	"os"

	"github.com/panelctl/panelctl/internal/api"
	"github.com/panelctl/panelctl/internal/config"
	"github.com/panelctl/panelctl/internal/guard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	targetFile string
)

var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Reconcile and deploy services on a remote hosting panel",
	Long: `Panelctl drives one service per invocation through the deploy pipeline:
1. Guard - refuse to touch services outside the configured name prefix
2. Reconcile - create the service or update its image against live panel state
3. Transport - package and stage the code archive for upload-sourced services
4. Deploy - trigger the deploy, riding out the panel's post-create window`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.panelctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&targetFile, "target", "panel.toml", "deploy-target descriptor")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".panelctl")
	}

	viper.SetEnvPrefix("panelctl")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// fatal prints a human-readable message on the diagnostic stream and exits
// non-zero. Every failure path in every command funnels through here or
// refuse; nothing is silently discarded.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// refuse aborts a mutating command whose service name fails the prefix
// check, before any network request is made.
func refuse(name, prefix string) {
	fmt.Fprintf(os.Stderr, "Refusing to touch %q: managed services must be named %s-*\n", name, prefix)
	os.Exit(1)
}

// requireGuard is the entry gate for every mutating command.
func requireGuard(name string, target config.Target) {
	if !guard.Allow(name, target.Prefix) {
		refuse(name, target.Prefix)
	}
}

func loadTarget() config.Target {
	target, err := config.LoadTarget(targetFile)
	if err != nil {
		fatal(err)
	}
	return target
}

func loadSecrets() config.Secrets {
	secrets := config.Secrets{
		Token:       viper.GetString("token"),
		SSHPassword: viper.GetString("ssh_password"),
	}
	if secrets.Token == "" {
		fatal(fmt.Errorf("no API token: set PANELCTL_TOKEN or token in the config file"))
	}
	return secrets
}

func newClient(target config.Target, secrets config.Secrets) *api.Client {
	return api.NewClient(target.APIURL, secrets.Token)
}

// projectOrDefault resolves the optional trailing project argument against
// the target descriptor's default.
func projectOrDefault(args []string, index int, target config.Target) string {
	if len(args) > index {
		return args[index]
	}
	return target.Project
}
