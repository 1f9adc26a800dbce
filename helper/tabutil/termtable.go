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
// Package tabutil renders console tables.
package tabutil

import (
	"github.com/spf13/cast"
	"github.com/stevedomin/termtable"
)

// A Table allows to render console text in a table presentation
type Table interface {
	// AddRow adds a new line to the table, items are converted to strings
	AddRow(items ...interface{})
	// Render renders the table and returns its string representation
	Render() string
}

// NewTable creates a Table with the given column headers
func NewTable(headers ...string) Table {
	tt := termtable.NewTable(nil, &termtable.TableOptions{
		Padding:      1,
		UseSeparator: true,
	})
	if len(headers) > 0 {
		tt.SetHeader(headers)
	}
	return &termTable{tt: tt}
}

type termTable struct {
	tt *termtable.Table
}

func (t *termTable) AddRow(items ...interface{}) {
	t.tt.AddRow(cast.ToStringSlice(items))
}

func (t *termTable) Render() string {
	return t.tt.Render()
}
