package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planbiir/gpxgeo/internal/config"
	"github.com/planbiir/gpxgeo/internal/convert"
)

type job struct {
	Input  string
	Output string
}

func extension(format string) string {
	if format == config.FormatModel {
		return ".json"
	}
	return ".geojson"
}

// planJobs pairs each input with its output path. A single input writes to
// output when given; several inputs treat output as a directory.
func planJobs(inputs []string, output, format string) ([]job, error) {
	ext := extension(format)

	if len(inputs) == 1 && output != "" && !strings.HasSuffix(output, string(os.PathSeparator)) {
		if info, err := os.Stat(output); err != nil || !info.IsDir() {
			return []job{{Input: inputs[0], Output: output}}, nil
		}
	}

	if output != "" {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		base := strings.TrimSuffix(in, filepath.Ext(in))
		if output != "" {
			base = filepath.Join(output, filepath.Base(base))
		}
		out := base + ext

		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("inputs %s and %s both write %s", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, job{Input: in, Output: out})
	}

	return jobs, nil
}

func convertFile(j job, opts convert.Options, indent string) (*convert.Result, error) {
	data, err := os.ReadFile(j.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	res, err := convert.Bytes(data, opts)
	if err != nil {
		return nil, err
	}

	var out []byte
	if indent != "" {
		out, err = json.MarshalIndent(res.Document, "", indent)
	} else {
		out, err = json.Marshal(res.Document)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	if err := os.WriteFile(j.Output, append(out, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return res, nil
}
