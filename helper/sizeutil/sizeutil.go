// Copyright 2026 The launchexp Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package sizeutil

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ParseMemory returns the number of bytes of a Slurm memory request.
//
// A bare integer is a number of megabytes as for sbatch --mem, otherwise the
// size is parsed as a human readable value such as "32GB" or "4 GiB".
func ParseMemory(size string) (uint64, error) {
	if mSize, err := strconv.ParseUint(size, 10, 64); err == nil {
		return mSize * humanize.MByte, nil
	}
	bsize, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, errors.Errorf("Can't convert size to bytes value: %v", err)
	}
	return bsize, nil
}

// FormatMemory returns a human readable representation of a Slurm memory request
func FormatMemory(size string) (string, error) {
	bsize, err := ParseMemory(size)
	if err != nil {
		return "", err
	}
	return humanize.Bytes(bsize), nil
}
