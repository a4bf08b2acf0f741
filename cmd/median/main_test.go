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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/datasketches-go-median/entropy"
	"github.com/apache/datasketches-go-median/median"
)

func TestLoadConfig(t *testing.T) {
	raw := []byte(`
values = [1.0, 3.0, 5.0, 6.0]
seed = 42
hasher = "murmur3"
index_mode = "compat"
`)
	cfg, err := loadConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5, 6}, cfg.Values)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, "murmur3", cfg.Hasher)
	assert.Equal(t, "compat", cfg.IndexMode)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	_, err := loadConfig([]byte(`pivot = "first"`))
	assert.Error(t, err)
}

func TestParseValues(t *testing.T) {
	vs, err := parseValues([]string{"7", "-2.5", "1e3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, -2.5, 1000}, vs)

	_, err = parseValues([]string{"seven"})
	assert.Error(t, err)
}

func TestNewSelector(t *testing.T) {
	seed := uint64(1)

	s, err := newSelector(config{Seed: &seed, Hasher: "xxhash", IndexMode: "compat"})
	require.NoError(t, err)
	assert.Equal(t, entropy.IndexModeCompat, s.IndexMode())

	s, err = newSelector(config{})
	require.NoError(t, err)
	assert.Equal(t, entropy.IndexModeUnbiased, s.IndexMode())

	_, err = newSelector(config{IndexMode: "fast"})
	assert.Error(t, err)

	_, err = newSelector(config{Seed: &seed, Hasher: "sha1"})
	assert.Error(t, err)

	_, err = newSelector(config{Hasher: "murmur3"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	values := []float64{7, 2, 3, 5, 10}
	err := run(&out, median.NewSelector(median.WithSeed(entropy.DefaultSeed)), values)
	require.NoError(t, err)
	assert.Contains(t, out.String(), ") = 5\n")
	assert.ElementsMatch(t, []float64{2, 3, 5, 7, 10}, values)
}

func TestRunEmpty(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, median.NewSelector(), []float64{})
	assert.ErrorIs(t, err, median.ErrEmpty)
	assert.Equal(t, "median([]) = none (operation is undefined for an empty sequence)\n", out.String())
}

func TestMergeFlags(t *testing.T) {
	fileSeed := uint64(7)
	flagSeed := uint64(99)
	fromFile := config{
		Values:    []float64{1, 2, 3},
		Seed:      &fileSeed,
		Hasher:    "xxhash",
		IndexMode: "unbiased",
	}

	testCases := []struct {
		name      string
		cfg       config
		seed      string
		hasher    string
		indexMode string
		args      []string
		expected  config
	}{
		{
			name:     "file values kept without flags",
			cfg:      fromFile,
			expected: fromFile,
		},
		{
			name:      "flags override file values",
			cfg:       fromFile,
			seed:      "99",
			hasher:    "murmur3",
			indexMode: "compat",
			expected: config{
				Values:    []float64{1, 2, 3},
				Seed:      &flagSeed,
				Hasher:    "murmur3",
				IndexMode: "compat",
			},
		},
		{
			name: "positional args replace file values",
			cfg:  fromFile,
			args: []string{"4", "5.5"},
			expected: config{
				Values:    []float64{4, 5.5},
				Seed:      &fileSeed,
				Hasher:    "xxhash",
				IndexMode: "unbiased",
			},
		},
		{
			name:     "sample used when nothing gives values",
			cfg:      config{},
			expected: config{Values: []float64{7, 2, 3, 5, 10}},
		},
		{
			name:      "sample used with flags only",
			cfg:       config{},
			seed:      "99",
			indexMode: "compat",
			expected:  config{Values: []float64{7, 2, 3, 5, 10}, Seed: &flagSeed, IndexMode: "compat"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mergeFlags(tc.cfg, tc.seed, tc.hasher, tc.indexMode, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMergeFlagsDoesNotShareSample(t *testing.T) {
	cfg, err := mergeFlags(config{}, "", "", "", nil)
	require.NoError(t, err)
	cfg.Values[0] = -1
	assert.Equal(t, 7.0, sampleValues[0])
}

func TestMergeFlagsInvalid(t *testing.T) {
	_, err := mergeFlags(config{}, "-3", "", "", nil)
	assert.Error(t, err)

	_, err = mergeFlags(config{}, "", "", "", []string{"1", "two"})
	assert.Error(t, err)
}
