// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

const valueSize = 8

// readValues maps path read-only and decodes it as little-endian int64s.
func readValues(path string) (_ []int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size()%valueSize != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of %d", path, info.Size(), valueSize)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: mmap: %w", path, err)
	}
	defer func() {
		if unmapErr := mm.Unmap(); unmapErr != nil && err == nil {
			err = fmt.Errorf("%s: unmap: %w", path, unmapErr)
		}
	}()

	values := make([]int64, len(mm)/valueSize)
	for i := range values {
		values[i] = int64(binary.LittleEndian.Uint64(mm[i*valueSize:]))
	}
	return values, nil
}

// writeValues writes values to path as little-endian int64s.
func writeValues(path string, values []int64) error {
	buf := make([]byte, 0, len(values)*valueSize)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return os.WriteFile(path, buf, 0o644)
}
