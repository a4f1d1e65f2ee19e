// Package config loads search and engine tuning parameters from a TOML
// file, the way the teacher's ambient config loader would if Gongo had
// one -- op/go-logging and BurntSushi/toml are exactly the pair the rest
// of this pack reaches for alongside each other for a search engine's
// logging+config ambient stack.
package config

import "github.com/BurntSushi/toml"

// Config holds every tunable the search driver and board engine expose.
// Zero values are never valid configuration; Default returns a filled-in
// instance and Load always starts from it before overlaying the file.
type Config struct {
	BoardSize      int     `toml:"board_size"`
	Komi           float64 `toml:"komi"`
	NumWorkers     int     `toml:"num_workers"`
	Seed           int64   `toml:"seed"`
	UCBConstant    float64 `toml:"ucb_constant"`
	RaveK          float64 `toml:"rave_k"`
	UsePriors      bool    `toml:"use_priors"`
	PlayoutSamples int     `toml:"playout_samples"`
	Pattern3Path   string  `toml:"pattern3_path"`
	Pattern5Path   string  `toml:"pattern5_path"`
	PassWinrate    float64 `toml:"pass_winrate"`
	ResignWinrate  float64 `toml:"resign_winrate"`
}

// Default returns the configuration Gongo runs with absent a config file.
func Default() Config {
	return Config{
		BoardSize:      9,
		Komi:           7.5,
		NumWorkers:     0, // 0 means "let the driver pick hardware concurrency"
		Seed:           1,
		UCBConstant:    2.0,
		RaveK:          1000,
		UsePriors:      true,
		PlayoutSamples: 8,
		PassWinrate:    0.9999,
		ResignWinrate:  0.1,
	}
}

// Load reads path as TOML, overlaying onto Default(); a missing or
// malformed file is a configuration error the caller should report and
// refuse to start with, unlike pattern-file loading which degrades
// silently (§7: these two failure modes have different blast radii).
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
