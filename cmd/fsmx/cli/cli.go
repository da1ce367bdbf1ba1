package cli

import (
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is read from the environment, after an optional .env file.
type Config struct {
	LogLevel      string `env:"FSMX_LOG_LEVEL" envDefault:"info"`
	LogDev        bool   `env:"FSMX_LOG_DEV" envDefault:"false"`
	StrictVersion bool   `env:"FSMX_STRICT_VERSION" envDefault:"false"`
}

// LoadConfig parses Config. A missing .env file is not an error.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}

// CLI holds the IO streams, configuration and logger shared by every command.
type CLI struct {
	Name   string
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	Config Config
	Logger *zap.SugaredLogger

	// LoadConfig is replaced in tests.
	LoadConfig func() (Config, error)
}

// NewCLI returns a CLI writing to out and errOut. Config and Logger are set when a
// command runs.
func NewCLI(name string, in io.Reader, out, errOut io.Writer) *CLI {
	return &CLI{
		Name:       name,
		In:         in,
		Out:        out,
		ErrOut:     errOut,
		Logger:     zap.NewNop().Sugar(),
		LoadConfig: LoadConfig,
	}
}

func (cli *CLI) init() error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	cli.Config = cfg

	logger, err := newLogger(cfg, cli.ErrOut)
	if err != nil {
		return err
	}
	cli.Logger = logger
	return nil
}

func newLogger(cfg Config, w io.Writer) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.LogLevel)
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder(encoderCfg)
	if cfg.LogDev {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core).Sugar(), nil
}
