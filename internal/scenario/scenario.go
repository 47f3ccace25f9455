// Package scenario decodes and replays YAML edit scripts against a session.
//
// A script is a list of steps, each naming an operation and its arguments:
//
//	name: two boxes
//	steps:
//	  - {op: vertex, id: a, x: 10, y: 10, width: 80, height: 30}
//	  - {op: vertex, id: b, x: 200, y: 10, width: 80, height: 30}
//	  - {op: edge, id: ab, source: a, target: b}
//	  - op: batch
//	    steps:
//	      - {op: move, id: a, dx: 5}
//	      - {op: style, id: b, style: "fillColor=red"}
//	  - {op: undo}
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Operation names.
const (
	OpVertex         = "vertex"
	OpEdge           = "edge"
	OpMove           = "move"
	OpGeometry       = "geometry"
	OpReparent       = "reparent"
	OpRemove         = "remove"
	OpStyle          = "style"
	OpValue          = "value"
	OpVisible        = "visible"
	OpCollapse       = "collapse"
	OpTerminal       = "terminal"
	OpSelect         = "select"
	OpDeselect       = "deselect"
	OpClearSelection = "clear-selection"
	OpDrill          = "drill"
	OpBatch          = "batch"
	OpUndo           = "undo"
	OpRedo           = "redo"
	OpScale          = "scale"
	OpTranslate      = "translate"
)

var knownOps = map[string]bool{
	OpVertex: true, OpEdge: true, OpMove: true, OpGeometry: true, OpReparent: true,
	OpRemove: true, OpStyle: true, OpValue: true, OpVisible: true, OpCollapse: true,
	OpTerminal: true, OpSelect: true, OpDeselect: true, OpClearSelection: true,
	OpDrill: true, OpBatch: true, OpUndo: true, OpRedo: true, OpScale: true, OpTranslate: true,
}

var (
	// ErrUnknownOp is returned for a step whose op is not supported.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrUnknownCell is returned when a step names a cell the model does not contain.
	ErrUnknownCell = errors.New("unknown cell")
)

// Script is a named list of steps.
type Script struct {
	Name  string `mapstructure:"name"`
	Steps []Step `mapstructure:"steps"`
}

// Step is one operation. Only the fields the operation uses are read.
type Step struct {
	Op     string `mapstructure:"op"`
	ID     string `mapstructure:"id"`
	Parent string `mapstructure:"parent"`
	// Index positions a reparented cell; nil appends.
	Index *int   `mapstructure:"index"`
	Value any    `mapstructure:"value"`
	Style string `mapstructure:"style"`

	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	DX     float64 `mapstructure:"dx"`
	DY     float64 `mapstructure:"dy"`
	Scale  float64 `mapstructure:"scale"`

	Source   string `mapstructure:"source"`
	Target   string `mapstructure:"target"`
	Terminal string `mapstructure:"terminal"`
	// End is "source" or "target" for the terminal operation.
	End string `mapstructure:"end"`

	Visible   *bool `mapstructure:"visible"`
	Collapsed *bool `mapstructure:"collapsed"`

	Cells []string `mapstructure:"cells"`
	// Count repeats undo and redo; zero means once.
	Count int    `mapstructure:"count"`
	Steps []Step `mapstructure:"steps"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return script, nil
}

// Parse decodes a YAML script and checks every op name.
func Parse(data []byte) (*Script, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	var script Script
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &script,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := checkOps("", script.Steps); err != nil {
		return nil, err
	}
	return &script, nil
}

func checkOps(prefix string, steps []Step) error {
	for i, step := range steps {
		pos := fmt.Sprintf("%s%d", prefix, i+1)
		if !knownOps[step.Op] {
			return fmt.Errorf("step %s: %w %q", pos, ErrUnknownOp, step.Op)
		}
		if step.Op != OpBatch && len(step.Steps) > 0 {
			return fmt.Errorf("step %s: only %s takes nested steps", pos, OpBatch)
		}
		if err := checkOps(pos+".", step.Steps); err != nil {
			return err
		}
	}
	return nil
}
