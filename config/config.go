package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lightswitch/lightswitch/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigFile = "config.yaml"
	appName           = "lightswitch"

	envConfig     = "LIGHTSWITCH_CONFIG"
	envArchive    = "LIGHTSWITCH_ARCHIVE"
	envThickLines = "LIGHTSWITCH_THICK_LINES"
)

// Normalize holds the stroke normalizer constants.
type Normalize struct {
	PressureScale float64 `yaml:"pressure_scale"`
	Margin        float64 `yaml:"margin"`
}

// Shader holds the timeline shader constants. Times are in the normalized
// picture time unit, where one unit is the duration of the whole word.
type Shader struct {
	RenderPreTime   float32 `yaml:"render_pre_time"`
	RenderPostTime  float32 `yaml:"render_post_time"`
	UnrenderPreTime float32 `yaml:"unrender_pre_time"`
	HalfWidth       float32 `yaml:"half_width"`
	Steepness       float32 `yaml:"steepness"`
	LineWidth       float32 `yaml:"line_width"`
	ThickLines      bool    `yaml:"thick_lines"`
}

type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Hwr struct {
	Lang      string `yaml:"lang"`
	BatchSize int64  `yaml:"batch_size"`
}

type Config struct {
	Archive   string    `yaml:"archive"`
	Fallback  []string  `yaml:"fallback"`
	Listen    string    `yaml:"listen"`
	Normalize Normalize `yaml:"normalize"`
	Expand    struct {
		HalfWidth float64 `yaml:"half_width"`
	} `yaml:"expand"`
	Shader Shader `yaml:"shader"`
	Window Window `yaml:"window"`
	Hwr    Hwr    `yaml:"hwr"`
}

// Default returns the tuned values the pictures were authored against.
func Default() Config {
	var c Config
	c.Archive = "pictures_vbuf.zip"
	c.Fallback = []string{"aardvark"}
	c.Listen = "localhost:8080"
	c.Normalize = Normalize{PressureScale: 500, Margin: 0.05}
	c.Expand.HalfWidth = 0.005
	c.Shader = Shader{
		RenderPreTime:   0.1,
		RenderPostTime:  0.2,
		UnrenderPreTime: 0.1,
		HalfWidth:       0.005,
		Steepness:       350,
		LineWidth:       4,
	}
	c.Window = Window{Width: 800, Height: 600}
	c.Hwr = Hwr{Lang: "en_US", BatchSize: 3}
	return c
}

// Path returns the location of the configuration file.
func Path() (string, error) {
	if p := os.Getenv(envConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "can't determine config dir")
	}
	return filepath.Join(dir, appName, defaultConfigFile), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()

	content, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		log.Trace.Printf("config %s not found, using defaults", path)
		return c, nil
	}
	if err != nil {
		return c, errors.Wrapf(err, "can't read config %s", path)
	}

	if err := yaml.Unmarshal(content, &c); err != nil {
		return c, errors.Wrapf(err, "can't parse config %s", path)
	}
	return c, c.Validate()
}

// FromEnv loads the configuration file and applies environment overrides.
func FromEnv() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	c, err := Load(path)
	if err != nil {
		return c, err
	}
	if a := os.Getenv(envArchive); a != "" {
		c.Archive = a
	}
	if t := os.Getenv(envThickLines); t != "" {
		b, err := strconv.ParseBool(t)
		if err != nil {
			return c, errors.Wrapf(err, "invalid %s", envThickLines)
		}
		c.Shader.ThickLines = b
	}
	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.Normalize.PressureScale <= 0:
		return errors.New("normalize.pressure_scale must be positive")
	case c.Normalize.Margin < 0 || c.Normalize.Margin >= 0.5:
		return errors.New("normalize.margin must be in [0, 0.5)")
	case c.Shader.RenderPreTime <= 0 || c.Shader.RenderPostTime <= 0 || c.Shader.UnrenderPreTime <= 0:
		return errors.New("shader pre/post times must be positive")
	case c.Shader.LineWidth <= 0:
		return errors.New("shader.line_width must be positive")
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.New("window size must be positive")
	}
	return nil
}
