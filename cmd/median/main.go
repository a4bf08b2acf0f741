/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command median prints the median of a list of numbers.
//
//	median [-verbose] [-config file.toml] [-seed n] [-hasher xxhash|murmur3] [-index unbiased|compat] [value ...]
//
// Without values it uses a fixed sample.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/apache/datasketches-go-median/entropy"
	"github.com/apache/datasketches-go-median/median"
)

type config struct {
	Values    []float64 `toml:"values,omitempty"`
	Seed      *uint64   `toml:"seed,omitempty"`
	Hasher    string    `toml:"hasher,omitempty"`
	IndexMode string    `toml:"index_mode,omitempty"`
}

var (
	log *zap.Logger

	sampleValues = []float64{7.0, 2.0, 3.0, 5.0, 10.0}
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
}

func loadConfig(raw []byte) (config, error) {
	var cfg config
	err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return config{}, err
	}
	return cfg, nil
}

func parseValues(args []string) ([]float64, error) {
	vs := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func newSelector(cfg config) (*median.Selector, error) {
	mode, err := entropy.ParseIndexMode(cfg.IndexMode)
	if err != nil {
		return nil, err
	}
	opts := []median.Option{median.WithIndexMode(mode)}
	if cfg.Seed != nil {
		hasher, err := entropy.ParseHasher(cfg.Hasher)
		if err != nil {
			return nil, err
		}
		opts = append(opts, median.WithSource(entropy.NewHashSource(*cfg.Seed, hasher)))
	} else if cfg.Hasher != "" {
		return nil, errors.New("hasher requires a seed")
	}
	return median.NewSelector(opts...), nil
}

// mergeFlags applies command line settings on top of cfg. Non-empty flags
// replace file values, positional args replace the file's values, and the
// fixed sample is used when neither supplies any.
func mergeFlags(cfg config, seed, hasher, indexMode string, args []string) (config, error) {
	if seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return config{}, fmt.Errorf("invalid seed %q: %w", seed, err)
		}
		cfg.Seed = &v
	}
	if hasher != "" {
		cfg.Hasher = hasher
	}
	if indexMode != "" {
		cfg.IndexMode = indexMode
	}
	if len(args) != 0 {
		vs, err := parseValues(args)
		if err != nil {
			return config{}, err
		}
		cfg.Values = vs
	}
	if cfg.Values == nil {
		cfg.Values = slices.Clone(sampleValues)
	}
	return cfg, nil
}

// run computes the median of values and writes the result line to w. The
// input is rendered after the computation, in the order it was left in.
func run(w io.Writer, s *median.Selector, values []float64) error {
	m, err := s.Median(values)
	if err != nil {
		fmt.Fprintf(w, "median(%v) = none (%v)\n", values, err)
		return err
	}
	fmt.Fprintf(w, "median(%v) = %v\n", values, m)
	return nil
}

func exitWithUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-verbose] [-config <file>] [-seed <n>] [-hasher xxhash|murmur3] [-index unbiased|compat] [value ...]\n", os.Args[0])
	os.Exit(2)
}

func main() {
	var (
		verbose    bool
		configFile string
		seed       string
		hasher     string
		indexMode  string
	)

	flags := flag.NewFlagSet("median", flag.ExitOnError)
	flags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file")
	flags.StringVar(&seed, "seed", "", "Seed for deterministic pivots")
	flags.StringVar(&hasher, "hasher", "", "Hash function of the seeded source")
	flags.StringVar(&indexMode, "index", "", "Pivot index mode")
	flags.Usage = exitWithUsage

	err := flags.Parse(os.Args[1:])
	if err != nil {
		exitWithUsage()
	}
	initLogger(verbose)

	var cfg config
	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			log.Fatal("failed to load configuration", zap.Error(err))
		}
		cfg, err = loadConfig(raw)
		if err != nil {
			log.Fatal("failed to decode configuration", zap.Error(err))
		}
	}
	cfg, err = mergeFlags(cfg, seed, hasher, indexMode, flags.Args())
	if err != nil {
		log.Fatal("failed to apply flags", zap.Error(err))
	}

	s, err := newSelector(cfg)
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	log.Debug("computing median",
		zap.Int("count", len(cfg.Values)),
		zap.String("indexMode", s.IndexMode().String()),
		zap.Bool("seeded", cfg.Seed != nil))

	if err := run(os.Stdout, s, cfg.Values); err != nil {
		log.Error("no median produced", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
