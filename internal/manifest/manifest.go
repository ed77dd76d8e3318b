// Package manifest loads snippet sets from CUE manifest directories.
//
// A manifest declares snippets under a top-level "snippet" struct:
//
//	snippet: greeting: {
//		implementor: "postgresql"
//		provides: ["function:greeting"]
//		requires: ["schema:app"]
//		install: ["CREATE FUNCTION app.greeting() ..."]
//		remove: ["DROP FUNCTION app.greeting()"]
//		kind: "ordinary"
//	}
//
// The field label is the snippet name. Statement strings carry no trailing
// semicolons; the descriptor renderer terminates statements itself.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/tada/pljava-sub016/internal/snippet"
)

// LoadMode controls how errors are handled during manifest loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the snippets decoded from a manifest directory.
type LoadResult struct {
	// Snippets in manifest label order (sorted), so downstream behavior
	// does not depend on CUE field iteration.
	Snippets []*snippet.Snippet

	// FileCount is the number of CUE files found.
	FileCount int
}

// LoadError represents an error that occurred during manifest loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeNoSnippets  = "E007" // Manifest declares no snippets

	// Snippet validation errors
	ErrCodeBadSnippet = "E101" // Snippet field failed to decode or validate
	ErrCodeBadKind    = "E102" // Unknown snippet kind
)

// rawSnippet mirrors the CUE shape of one snippet entry.
type rawSnippet struct {
	Implementor string   `json:"implementor"`
	Install     []string `json:"install"`
	Remove      []string `json:"remove"`
	Provides    []string `json:"provides"`
	Requires    []string `json:"requires"`
	Kind        string   `json:"kind"`
}

// Load reads every CUE file under dir and decodes the snippet set.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func Load(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{FileCount: len(cueFiles)}

	snippetsVal := value.LookupPath(cue.ParsePath("snippet"))
	if !snippetsVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeNoSnippets, Message: "manifest declares no snippets (missing top-level \"snippet\" struct)"}}
	}

	iter, iterErr := snippetsVal.Fields()
	if iterErr != nil {
		return result, append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating snippets: %v", iterErr)})
	}

	for iter.Next() {
		s, decodeErr := decodeSnippet(iter.Label(), iter.Value())
		if decodeErr != nil {
			errs = append(errs, decodeErr)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Snippets = append(result.Snippets, s)
	}

	if len(result.Snippets) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeNoSnippets, Message: "manifest declares no snippets"})
	}

	// Label order, not CUE iteration order, so loading is reproducible.
	sort.Slice(result.Snippets, func(i, j int) bool {
		return result.Snippets[i].Name() < result.Snippets[j].Name()
	})

	return result, errs
}

// decodeSnippet converts one CUE field into an immutable snippet.
func decodeSnippet(label string, v cue.Value) (*snippet.Snippet, *LoadError) {
	var raw rawSnippet
	if err := v.Decode(&raw); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadSnippet,
			Message: fmt.Sprintf("snippet %q: %v", label, err),
			Pos:     v.Pos(),
		}
	}

	kind, err := snippet.ParseKind(raw.Kind)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadKind,
			Message: fmt.Sprintf("snippet %q: %v", label, err),
			Pos:     v.Pos(),
		}
	}

	s, err := snippet.New(snippet.Definition{
		Name:        label,
		Implementor: raw.Implementor,
		Install:     raw.Install,
		Remove:      raw.Remove,
		Provides:    raw.Provides,
		Requires:    raw.Requires,
		Kind:        kind,
	})
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadSnippet,
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return s, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
