package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"enigma/internal/keysheet"
	"enigma/internal/logging"
	"enigma/internal/message"
	"enigma/internal/settings"
	"enigma/pkg/enigma"
)

// Job is one message to key. Exactly one of Settings or Sheet names the key.
type Job struct {
	Name     string             `json:"name" yaml:"name"`
	Settings *settings.Settings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Sheet    string             `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Text     string             `json:"text" yaml:"text"`
	Raw      bool               `json:"raw,omitempty" yaml:"raw,omitempty"` // key Text as-is instead of preparing it
}

// JobFile is the on-disk batch format.
type JobFile struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// Result is the outcome of one job. Err is set instead of Output when the
// job could not run.
type Result struct {
	Index  int
	Name   string
	Output string
	Err    error
}

// LoadJobs reads a job file (YAML or JSON). Jobs without a name are named
// after their position.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	var f JobFile
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" || (ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{")) {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse jobs json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse jobs yaml: %w", err)
	}
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if (j.Settings == nil) == (j.Sheet == "") {
			return nil, fmt.Errorf("%s: job %q needs exactly one of settings or sheet", path, j.Name)
		}
	}
	return f.Jobs, nil
}

// ResolveSheets replaces sheet references with the stored settings.
func ResolveSheets(jobs []Job, st keysheet.Store) error {
	for i := range jobs {
		j := &jobs[i]
		if j.Sheet == "" {
			continue
		}
		if st == nil {
			return fmt.Errorf("job %q: key sheet %q requested but no store is open", j.Name, j.Sheet)
		}
		sh, err := st.Get(j.Sheet)
		if err != nil {
			return fmt.Errorf("job %q: %w", j.Name, err)
		}
		if sh == nil {
			return fmt.Errorf("job %q: %w: %q", j.Name, keysheet.ErrNotFound, j.Sheet)
		}
		key := sh.Key
		j.Settings = &key
	}
	return nil
}

func runJob(cat enigma.Catalog, j Job) (string, error) {
	if j.Settings == nil {
		return "", errors.New("job has no settings")
	}
	m, err := j.Settings.Build(cat, enigma.WithLogger(logging.Discard()))
	if err != nil {
		return "", err
	}
	text := j.Text
	if !j.Raw {
		text = message.Prepare(text)
	}
	return m.Encipher(text)
}

// RunBatch keys every job on its own machine, at most parallel at a time.
// Results come back in job order; a failing job records its error and does
// not stop the others. The returned error is only set when ctx ends early.
func RunBatch(ctx context.Context, cat enigma.Catalog, jobs []Job, parallel int) ([]Result, error) {
	if parallel < 1 {
		parallel = 1
	}
	logger := logging.New("session")
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, j := range jobs {
		results[i] = Result{Index: i, Name: j.Name}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			out, err := runJob(cat, j)
			if err != nil {
				results[i].Err = fmt.Errorf("job %q: %w", j.Name, err)
				logger.Warn("batch job failed", "job", j.Name, "error", err)
				return nil
			}
			results[i].Output = out
			return nil
		})
	}
	_ = g.Wait() // errors captured in Result.Err

	logger.Info("batch finished", "jobs", len(jobs), "workers", parallel)
	return results, ctx.Err()
}
