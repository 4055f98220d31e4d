package main

import (
	"github.com/spf13/pflag"
)

// options holds flags that are not configuration keys.
type options struct {
	configPath string
	envFile    string
	model      string
	list       bool
}

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"profiles.file":      "profiles",
	"profiles.selected":  "profile",
	"profiles.watch":     "watch",
	"chat.system_prompt": "system",
	"chat.history_limit": "history",
	"chat.stream":        "stream",
	"log.level":          "log-level",
	"log.format":         "log-format",
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flags := pflag.NewFlagSet("aistream", pflag.ContinueOnError)
	flags.SortFlags = false

	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.yaml or $HOME/.aistream/config.yaml)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration; missing is fine")
	flags.StringVarP(&opts.model, "model", "m", "", "override the selected profile's model name")
	flags.BoolVarP(&opts.list, "list", "l", false, "list profiles and exit")

	flags.String("profiles", "profiles.yaml", "profiles file (.yaml, .yml or .toml)")
	flags.StringP("profile", "p", "", "profile name or id (default: the default profile)")
	flags.Bool("watch", false, "reload the profiles file when it changes")
	flags.StringP("system", "s", "", "system prompt")
	flags.Int("history", 0, "maximum conversation messages sent per ask (0 = all)")
	flags.Bool("stream", true, "stream the reply; --stream=false waits for the full text")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "compact", "log format (compact, pretty, json)")
	return flags
}
