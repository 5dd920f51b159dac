package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Seednode/bingohub/internal/phrase"
	"github.com/Seednode/bingohub/internal/room"
)

type Config struct {
	autoCall       bool
	bind           string
	callSpeed      int
	language       string
	maxBots        int
	openAIBaseURL  string
	openAIKey      string
	openAIModel    string
	phraseTimeout  time.Duration
	port           int
	prefix         string
	profile        bool
	requestTimeout time.Duration
	roomTimeout    time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool

	log *zap.SugaredLogger
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.callSpeed < room.MinCallSpeed || c.callSpeed > room.MaxCallSpeed {
		return fmt.Errorf("invalid call speed (must be between %d-%d inclusive): %d", room.MinCallSpeed, room.MaxCallSpeed, c.callSpeed)
	}
	if c.maxBots < 0 {
		return fmt.Errorf("invalid bot limit (must not be negative): %d", c.maxBots)
	}
	if c.phraseTimeout <= 0 || c.requestTimeout <= 0 {
		return errors.New("--phrase-timeout and --request-timeout must be positive")
	}

	lang, err := room.NormalizeLanguage(c.language)
	if err != nil {
		return err
	}
	c.language = lang

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) logger() *zap.SugaredLogger {
	if c.log == nil {
		return zap.NewNop().Sugar()
	}
	return c.log
}

// roomDefaults is the config given to rooms created on this server.
func (c *Config) roomDefaults() room.Config {
	return room.Config{
		AutoCall:  c.autoCall,
		CallSpeed: c.callSpeed,
		Language:  c.language,
	}
}

func (c *Config) phrases() room.PhraseGenerator {
	if c.openAIKey == "" {
		return phrase.Static{}
	}
	return phrase.NewOpenAI(c.openAIKey, c.openAIModel, c.openAIBaseURL, phrase.Static{})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BINGOHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "bingohub",
		Short:         "Multiplayer bingo rooms served over websockets.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			log, err := newLogger(cfg.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			cfg.log = log

			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	defaults := room.DefaultConfig()

	fs.BoolVar(&cfg.autoCall, "auto-call", defaults.AutoCall, "call numbers automatically in new rooms (env: BINGOHUB_AUTO_CALL)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: BINGOHUB_BIND)")
	fs.IntVar(&cfg.callSpeed, "call-speed", defaults.CallSpeed, "seconds between automatic calls in new rooms (env: BINGOHUB_CALL_SPEED)")
	fs.StringVar(&cfg.language, "language", defaults.Language, "language of new rooms, vi or en (env: BINGOHUB_LANGUAGE)")
	fs.IntVar(&cfg.maxBots, "max-bots", 4, "bots a host may add to one room (env: BINGOHUB_MAX_BOTS)")
	fs.StringVar(&cfg.openAIBaseURL, "openai-base-url", "", "base URL of an OpenAI-compatible API (env: BINGOHUB_OPENAI_BASE_URL)")
	fs.StringVar(&cfg.openAIKey, "openai-key", "", "API key used to generate call phrases; empty uses built-in phrases (env: BINGOHUB_OPENAI_KEY)")
	fs.StringVar(&cfg.openAIModel, "openai-model", phrase.DefaultModel, "model used to generate call phrases (env: BINGOHUB_OPENAI_MODEL)")
	fs.DurationVar(&cfg.phraseTimeout, "phrase-timeout", 3*time.Second, "time to wait for a call phrase before calling without one (env: BINGOHUB_PHRASE_TIMEOUT)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: BINGOHUB_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: BINGOHUB_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: BINGOHUB_PROFILE)")
	fs.DurationVar(&cfg.requestTimeout, "request-timeout", 10*time.Second, "time allowed for each room action (env: BINGOHUB_REQUEST_TIMEOUT)")
	fs.DurationVar(&cfg.roomTimeout, "room-timeout", 60*time.Minute, "time before idle rooms are closed, 0 to disable (env: BINGOHUB_ROOM_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: BINGOHUB_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: BINGOHUB_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: BINGOHUB_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: BINGOHUB_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("bingohub v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
