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

package launch

import (
	"strings"
	"testing"
	"unicode"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultResources() map[string]string {
	return map[string]string{
		"gres":      "gpu:1",
		"partition": "long",
		"time":      "24:00:00",
		"cpus":      "4",
		"mem":       "32GB",
	}
}

func baseBuilder() *Builder {
	return NewBuilder().
		Resources(defaultResources()).
		Environment("ocp").
		Arg(ModeArg, "train").
		Arg(ConfigArg, "configs/is2re/10k/sfarinet/sfarinet.yml")
}

// splitOutsideBrackets tokenizes s on whitespace that is not enclosed in square brackets
func splitOutsideBrackets(s string) []string {
	var tokens []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0 && unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func TestRenderReferenceInvocation(t *testing.T) {
	t.Parallel()
	req, err := baseBuilder().Build()
	require.Nil(t, err)
	out, err := req.Render()
	require.Nil(t, err)
	require.Equal(t, `gres=gpu:1 partition=long time=24:00:00 cpus=4 mem=32GB py_args="--mode train --config-yml configs/is2re/10k/sfarinet/sfarinet.yml" env=ocp`, out)
}

func TestRenderOverridesNoteAndExperimentName(t *testing.T) {
	t.Parallel()
	req, err := baseBuilder().
		ExperimentName("is2re/sfarinet").
		Arg("optim.lr_initial", "0.001").
		Arg("model.hidden_channels", "256").
		Arg("optim.lr_milestones", "[1500, 2000, 3000]").
		Arg("note", "baseline, no tricks").
		Build()
	require.Nil(t, err)
	out, err := req.Render()
	require.Nil(t, err)
	require.Equal(t, `gres=gpu:1 partition=long time=24:00:00 cpus=4 mem=32GB `+
		`py_args="--mode train --config-yml configs/is2re/10k/sfarinet/sfarinet.yml --optim.lr_initial=0.001 --model.hidden_channels=256 --optim.lr_milestones='[1500, 2000, 3000]' --note='baseline, no tricks'" `+
		`env=ocp exp_name=is2re/sfarinet`, out)
}

func TestListOverrideIsASingleToken(t *testing.T) {
	t.Parallel()
	req, err := baseBuilder().Arg("optim.lr_milestones", "[1500, 2000, 3000]").Build()
	require.Nil(t, err)

	tokens := splitOutsideBrackets(req.TrainingArgs())
	require.Contains(t, tokens, `--optim.lr_milestones='[1500, 2000, 3000]'`)

	out, err := req.Render()
	require.Nil(t, err)
	found := 0
	for _, tok := range splitOutsideBrackets(out) {
		if strings.Contains(tok, "lr_milestones") {
			found++
			assert.Contains(t, tok, `='[1500, 2000, 3000]'`, "token %q was split", tok)
		}
	}
	require.Equal(t, 1, found)
}

func TestResourceKeysRenderedOnceInStableOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		resources map[string]string
	}{
		{"Reference", defaultResources()},
		{"MultiGPU", map[string]string{"mem": "48GB", "cpus": "8", "time": "48:00:00", "partition": "main,long", "gres": "gpu:rtx8000:2"}},
		{"MemoryInMB", map[string]string{"time": "00:30:00", "gres": "gpu:0", "partition": "unkillable", "mem": "16000", "cpus": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewBuilder().Resources(tt.resources).Environment("ocp").
				Arg(ModeArg, "train").Arg(ConfigArg, "configs/a.yml").Build()
			require.Nil(t, err)
			out, err := req.Render()
			require.Nil(t, err)
			again, err := req.Render()
			require.Nil(t, err)
			require.Equal(t, out, again)

			tokens := strings.Split(out, " ")
			for i, k := range ResourceKeys {
				count := 0
				for _, tok := range tokens {
					if strings.HasPrefix(tok, string(k)+"=") {
						count++
					}
				}
				require.Equal(t, 1, count, "resource %q", k)
				require.Equal(t, string(k)+"="+tt.resources[string(k)], tokens[i])
			}
		})
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		req  LaunchRequest
	}{
		{"Minimal", LaunchRequest{
			Resources:   map[ResourceKey]string{Gres: "gpu:1", Partition: "long", Time: "24:00:00", CPUs: "4", Mem: "32GB"},
			Environment: "ocp",
			Mode:        "train",
			ConfigPath:  "configs/is2re/10k/sfarinet/sfarinet.yml",
		}},
		{"Overrides", LaunchRequest{
			Resources:   map[ResourceKey]string{Gres: "gpu:2", Partition: "main", Time: "100:00:00", CPUs: "8", Mem: "64GB"},
			Environment: "/network/envs/ocp",
			Mode:        "train",
			ConfigPath:  "configs/s2ef/all/gemnet.yml",
			Overrides: []Override{
				{Key: "optim.lr_initial", Value: "0.0005"},
				{Key: "optim.lr_milestones", Value: "[1500, 2000, 3000]"},
				{Key: "model.tag_hidden", Value: "['a', \"b's\"]"},
				{Key: "model.tags", Value: `['it\'s "x"']`},
				{Key: "dataset.name", Value: "café"},
				{Key: "wandb_tags", Value: "gemnet,baseline"},
				{Key: "model.cutoff", Value: "-6.0e-1"},
				{Key: "logdir", Value: "$SCRATCH/logs"},
				{Key: "weird", Value: `back\slash "dq" 'sq'`},
				{Key: "empty", Value: ""},
			},
			Note:           "it's the \"real\" run",
			ExperimentName: "s2ef/gemnet",
		}},
		{"Predict", LaunchRequest{
			Resources:   map[ResourceKey]string{Gres: "gpu:a100l:1", Partition: "unkillable", Time: "00:15:00", CPUs: "2", Mem: "8GB"},
			Environment: "ocp-dev",
			Mode:        "predict",
			ConfigPath:  "configs/path with spaces/model.yml",
			Note:        "[wip] check",
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := tt.req.Render()
			require.Nil(t, err)
			parsed, err := Parse(out)
			require.Nil(t, err, "invocation: %s", out)
			require.Equal(t, tt.req, *parsed)

			again, err := parsed.Render()
			require.Nil(t, err)
			require.Equal(t, out, again)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		builder *Builder
		kind    ErrorKind
		key     string
	}{
		{"MalformedTime", NewBuilder().Resource("time", "24-00-00"), InvalidFormat, "time"},
		{"TimeWithDays", NewBuilder().Resource("time", "1-00:00:00"), InvalidFormat, "time"},
		{"MinutesOutOfRange", NewBuilder().Resource("time", "10:75:00"), InvalidFormat, "time"},
		{"CPUsNotANumber", NewBuilder().Resource("cpus", "four"), InvalidFormat, "cpus"},
		{"CPUsZero", NewBuilder().Resource("cpus", "0"), InvalidFormat, "cpus"},
		{"MemNotASize", NewBuilder().Resource("mem", "lots"), InvalidFormat, "mem"},
		{"MemWithSpace", NewBuilder().Resource("mem", "32 GB"), InvalidFormat, "mem"},
		{"GresMalformed", NewBuilder().Resource("gres", "gpu=1"), InvalidFormat, "gres"},
		{"UnknownResource", NewBuilder().Resource("gpus", "1"), UnknownResourceKey, "gpus"},
		{"DuplicateResource", NewBuilder().Resource("cpus", "4").Resource("cpus", "8"), DuplicateKey, "cpus"},
		{"DuplicateOverride", NewBuilder().Arg("model.cutoff", "6.0").Arg("model.cutoff", "8.0"), DuplicateKey, "model.cutoff"},
		{"DuplicateConfigAlias", NewBuilder().Arg("config-yml", "a.yml").Arg("config_yml", "b.yml"), DuplicateKey, "config_yml"},
		{"DuplicateEnvironment", NewBuilder().Environment("ocp").Environment("ocp2"), DuplicateKey, "env"},
		{"EnvironmentWithSpace", NewBuilder().Environment("my env"), InvalidFormat, "env"},
		{"OverrideKeyNotDotted", NewBuilder().Arg("optim..lr", "1"), InvalidFormat, "optim..lr"},
		{"UnterminatedList", NewBuilder().Arg("optim.lr_milestones", "[1500, 2000"), UnbalancedQuoting, "optim.lr_milestones"},
		{"ListWithTrailingText", NewBuilder().Arg("optim.lr_milestones", "[1500] 2000]"), UnbalancedQuoting, "optim.lr_milestones"},
		{"UnterminatedNote", NewBuilder().Arg("note", "'forgot to close"), UnbalancedQuoting, "note"},
		{"ControlCharacters", NewBuilder().Arg("note", "line\nbreak"), InvalidFormat, "note"},
		{"InvalidUTF8Override", NewBuilder().Arg("dataset.name", "caf\xe9 x"), InvalidFormat, "dataset.name"},
		{"InvalidUTF8Note", NewBuilder().Arg("note", "caf\xe9"), InvalidFormat, "note"},
		{"InvalidUTF8Resource", NewBuilder().Resource("partition", "caf\xe9"), InvalidFormat, "partition"},
		{"InvalidUTF8Environment", NewBuilder().Environment("ocp\xff"), InvalidFormat, "env"},
		{"InvalidUTF8ExperimentName", NewBuilder().ExperimentName("exp\xff"), InvalidFormat, "exp_name"},
		{"MissingMode", NewBuilder().Resources(defaultResources()).Environment("ocp").Arg(ConfigArg, "a.yml"), MissingKey, "mode"},
		{"MissingResource", NewBuilder().Resource("gres", "gpu:1"), MissingKey, "partition"},
		{"MissingEnvironment", NewBuilder().Resources(defaultResources()), MissingKey, "env"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := tt.builder.Build()
			require.Error(t, err)
			require.Nil(t, req)
			require.True(t, HasKind(err, tt.kind), "expecting %s in %v", tt.kind, err)
			var keys []string
			for _, e := range Errors(err) {
				if e.Kind == tt.kind {
					keys = append(keys, e.Key)
				}
			}
			require.Contains(t, keys, tt.key)
		})
	}
}

func TestBuildCollectsAllErrors(t *testing.T) {
	t.Parallel()
	_, err := NewBuilder().
		Resource("time", "24-00-00").
		Resource("gpus", "1").
		Arg("model.cutoff", "6").
		Arg("model.cutoff", "7").
		Build()
	require.Error(t, err)
	require.True(t, HasKind(err, InvalidFormat))
	require.True(t, HasKind(err, UnknownResourceKey))
	require.True(t, HasKind(err, DuplicateKey))
	require.True(t, HasKind(err, MissingKey))
	// time was given, even if invalid, so it must not be reported as missing
	for _, e := range Errors(err) {
		if e.Kind == MissingKey {
			require.NotEqual(t, "time", e.Key)
		}
	}
}

func TestRenderRejectsInvalidRequest(t *testing.T) {
	t.Parallel()
	req := LaunchRequest{
		Resources:   map[ResourceKey]string{Gres: "gpu:1", Partition: "long", Time: "24:00:00", CPUs: "4", Mem: "32GB", "gpus": "2"},
		Environment: "ocp",
		Mode:        "train",
		ConfigPath:  "a.yml",
	}
	out, err := req.Render()
	require.Error(t, err)
	require.Empty(t, out)
	require.True(t, HasKind(err, UnknownResourceKey))
}

func TestBuildDoesNotShareState(t *testing.T) {
	t.Parallel()
	b := baseBuilder().Arg("optim.lr_initial", "0.1")
	req, err := b.Build()
	require.Nil(t, err)
	req.Resources[CPUs] = "64"
	req.Overrides[0].Value = "10"

	other, err := b.Build()
	require.Nil(t, err)
	require.Equal(t, "4", other.Resources[CPUs])
	v, ok := other.Override("optim.lr_initial")
	require.True(t, ok)
	require.Equal(t, "0.1", v)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	const resources = "gres=gpu:1 partition=long time=24:00:00 cpus=4 mem=32GB "
	tests := []struct {
		name       string
		invocation string
		kind       ErrorKind
	}{
		{"UnterminatedPyArgs", resources + `py_args="--mode train --config-yml a.yml env=ocp`, UnbalancedQuoting},
		{"UnterminatedNote", resources + `py_args="--mode train --config-yml a.yml --note='oops" env=ocp`, UnbalancedQuoting},
		{"PyArgsNotQuoted", resources + `py_args=--mode env=ocp`, UnbalancedQuoting},
		{"MissingPyArgs", resources + `env=ocp`, MissingKey},
		{"DuplicatePyArgs", resources + `py_args="--mode train --config-yml a.yml" py_args="--mode x --config-yml b.yml" env=ocp`, DuplicateKey},
		{"UnknownKey", resources + `py_args="--mode train --config-yml a.yml" env=ocp account=rrg`, UnknownResourceKey},
		{"NotKeyValue", resources + `py_args="--mode train --config-yml a.yml" env=ocp dangling`, InvalidFormat},
		{"BadTime", "gres=gpu:1 partition=long time=24-00-00 cpus=4 mem=32GB " + `py_args="--mode train --config-yml a.yml" env=ocp`, InvalidFormat},
		{"DuplicateOverride", resources + `py_args="--mode train --config-yml a.yml --model.cutoff=6 --model.cutoff=8" env=ocp`, DuplicateKey},
		{"ModeWithoutValue", resources + `py_args="--config-yml a.yml --mode" env=ocp`, MissingKey},
		{"PositionalArgument", resources + `py_args="train --config-yml a.yml" env=ocp`, InvalidFormat},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := Parse(tt.invocation)
			require.Error(t, err)
			require.Nil(t, req)
			require.True(t, HasKind(err, tt.kind), "expecting %s in %v", tt.kind, err)
		})
	}
}

func TestParseAcceptsEqualsFormForDistinguishedArgs(t *testing.T) {
	t.Parallel()
	req, err := Parse(`gres=gpu:1 partition=long time=24:00:00 cpus=4 mem=32GB py_args="--mode=train --config_yml=a.yml" env=ocp`)
	require.Nil(t, err)
	require.Equal(t, "train", req.Mode)
	require.Equal(t, "a.yml", req.ConfigPath)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	e := newError(InvalidFormat, "time", "expecting a HH:MM:SS duration, got %q", "24-00-00")
	require.Equal(t, `InvalidFormat: "time": expecting a HH:MM:SS duration, got "24-00-00"`, e.Error())
	require.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
	require.Nil(t, Errors(nil))
}

func TestTrainingArgsAreShellWords(t *testing.T) {
	t.Parallel()
	req, err := baseBuilder().
		Arg("model.tags", `['it\'s "x"']`).
		Arg("logdir", "$SCRATCH/logs").
		Arg("note", "it's done").
		Build()
	require.Nil(t, err)

	args := req.TrainingArgs()
	assert.Contains(t, args, `--note='it'\''s done'`)

	words, err := shellquote.Split(args)
	require.Nil(t, err)
	assert.Equal(t, []string{
		"--mode", "train",
		"--config-yml", "configs/is2re/10k/sfarinet/sfarinet.yml",
		`--model.tags=['it\'s "x"']`,
		"--logdir=$SCRATCH/logs",
		"--note=it's done",
	}, words)
}
