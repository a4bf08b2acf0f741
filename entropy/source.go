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

// Package entropy provides the random bytes and bounded random indexes used
// to pick quickselect pivots.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEntropyUnavailable is returned when a Source cannot produce the
	// requested bytes. It is never retried.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
)

// Source supplies random bytes on demand. Any io.Reader satisfies it.
type Source interface {
	Read(p []byte) (int, error)
}

// SystemSource reads from the operating system entropy pool.
// It is safe for concurrent use.
type SystemSource struct{}

func (SystemSource) Read(p []byte) (int, error) {
	return rand.Read(p)
}

// readUint64 fills a machine word from src in little endian order.
func readUint64(src Source) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
