package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Drolfothesgnir/markplus/pipeline"
	"github.com/Drolfothesgnir/markplus/util"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// stdinName names the document read from stdin.
const stdinName = "-"

type document struct {
	name string
	src  string
}

// Result is a processed document, as written by the json and yaml formats.
type Result struct {
	Name                 string `json:"name" yaml:"name"`
	pipeline.ParseResult `yaml:",inline"`
}

// readDocuments reads every file of paths, or stdin when paths is empty. "-" reads stdin too.
func readDocuments(paths []string, stdin io.Reader) ([]document, error) {
	if len(paths) == 0 {
		paths = []string{stdinName}
	}

	docs := make([]document, 0, len(paths))

	for _, path := range paths {
		var (
			data []byte
			err  error
		)

		if path == stdinName {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}

		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", path, err)
		}

		docs = append(docs, document{name: path, src: string(data)})
	}

	return docs, nil
}

// processDocuments runs the documents through processor, at most workers at once. The
// results keep the order of docs.
func processDocuments(ctx context.Context, processor *pipeline.Processor, docs []document, workers int) ([]Result, error) {
	results := make([]Result, len(docs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, doc := range docs {
		i, doc := i, doc

		group.Go(func() error {
			// the processing itself can not be interrupted
			if err := ctx.Err(); err != nil {
				return err
			}

			res := processor.Analyze(doc.src)
			results[i] = Result{Name: doc.name, ParseResult: res}

			for _, w := range res.Warnings {
				log.Debug().
					Str("document", doc.name).
					Int("pos", w.Pos).
					Str("issue", w.Issue.String()).
					Msg(w.Description)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// writeResults writes results to w in the given format.
func writeResults(w io.Writer, format string, results []Result) error {
	switch format {
	case util.FormatMarkdown:
		for _, res := range results {
			if _, err := io.WriteString(w, res.Output); err != nil {
				return err
			}
		}

	case util.FormatHTML:
		for _, res := range results {
			if res.HTML == "" {
				continue
			}
			if _, err := io.WriteString(w, res.HTML+"\n"); err != nil {
				return err
			}
		}

	case util.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)

	case util.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	return nil
}
