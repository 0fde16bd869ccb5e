package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todoapp/internal/utils"
)

// SchemaVersion is the only seed/snapshot version understood.
const SchemaVersion = 1

// Snapshot is the machine-readable view of a store.
type Snapshot struct {
	SchemaVersion int     `json:"schema_version"`
	Tasks         []Entry `json:"tasks"`
	Stats         Stats   `json:"stats"`
}

// Snapshot captures the current list and its statistics.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		Tasks:         make([]Entry, len(s.tasks)),
		Stats:         Stats{Total: len(s.tasks)},
	}
	for i, task := range s.tasks {
		snap.Tasks[i] = entryOf(i, task)
		if task.Done {
			snap.Stats.Completed++
		}
	}
	snap.Stats.Pending = snap.Stats.Total - snap.Stats.Completed
	return snap
}

// Write encodes the snapshot with 2-space indentation and a trailing newline.
func (s *Snapshot) Write(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// SeedTask is one task in a seed document.
type SeedTask struct {
	Text string `json:"text"`
	Done bool   `json:"done,omitempty"`
}

// Seed is an initial task list replayed into a fresh store.
// Snapshots are valid seeds; their ids, indices and stats are ignored.
type Seed struct {
	SchemaVersion int        `json:"schema_version"`
	Tasks         []SeedTask `json:"tasks"`

	raw       interface{}
	decodeErr error
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the embedded schema with a file on disk.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Err joins the validation errors, or returns nil for a valid result.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

// LoadSeed reads a seed document from path.
func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ReadSeed(f)
}

// ReadSeed parses a seed document. Only malformed JSON is an error here;
// wrongly typed fields are reported by Validate.
func ReadSeed(r io.Reader) (*Seed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	raw, err := decodeInstance(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	seed := &Seed{raw: raw}
	if err := json.Unmarshal(data, seed); err != nil {
		seed.decodeErr = fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// Validate checks the seed against the schema, falling back to minimal
// structural checks when no schema can be compiled.
func (s *Seed) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schemaResult := s.validateWithSchema(opts.SchemaPath)
	result.UsedSchema = schemaResult.UsedSchema
	result.Warnings = append(result.Warnings, schemaResult.Warnings...)
	if schemaResult.UsedSchema {
		if !schemaResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, schemaResult.Errors...)
			return result
		}
		// The schema pattern only knows ASCII whitespace; Add trims all of it.
		s.validateTexts(result)
		return result
	}

	result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	s.validateMinimal(result)
	return result
}

// Apply replays the seed into store through Add and ToggleDone.
// It returns the number of tasks added.
func (s *Seed) Apply(store *Store) (int, error) {
	if s.decodeErr != nil {
		return 0, s.decodeErr
	}
	added := 0
	for i, task := range s.Tasks {
		entry, err := store.Add(task.Text)
		if err != nil {
			return added, &ValidationError{Path: fmt.Sprintf("tasks[%d].text", i), Err: err}
		}
		added++
		if !task.Done {
			continue
		}
		if _, err := store.ToggleDone(entry.Index); err != nil {
			return added, fmt.Errorf("seed task %d: %w", i, err)
		}
	}
	return added, nil
}

func (s *Seed) validateMinimal(result *ValidationResult) {
	if s.decodeErr != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: s.decodeErr})
	}

	if s.SchemaVersion != SchemaVersion {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SchemaVersion, s.SchemaVersion),
		})
	}

	if s.Tasks == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "tasks",
			Err:  fmt.Errorf("missing required field"),
		})
		return
	}

	s.validateTexts(result)
}

func (s *Seed) validateTexts(result *ValidationResult) {
	for i, task := range s.Tasks {
		if strings.TrimSpace(task.Text) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("tasks[%d].text", i),
				Err:  ErrEmptyInput,
			})
		}
	}
}

func (s *Seed) validateWithSchema(schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		return result
	}
	result.UsedSchema = true

	instance := s.raw
	if instance == nil {
		// Built in code rather than read: round-trip through JSON.
		data, err := json.Marshal(s)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Errorf("marshal seed for validation: %w", err))
			return result
		}
		instance, err = decodeInstance(data)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Errorf("unmarshal seed for validation: %w", err))
			return result
		}
	}

	if err := schema.Validate(instance); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

// decodeInstance decodes JSON into the generic form the schema validates.
// Numbers stay json.Number so integer checks see the literal.
func decodeInstance(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if schemaPath == "" {
		if err := compiler.AddResource(seedSchemaURL, strings.NewReader(seedSchema)); err != nil {
			return nil, fmt.Errorf("invalid embedded schema: %w", err)
		}
		return compiler.Compile(seedSchemaURL)
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
