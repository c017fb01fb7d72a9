// Package validate checks create and update payloads against CUE schemas
// before they reach the overlay.
package validate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

//go:embed schema.cue
var schemaSource string

// Error lists every problem found in one payload
type Error struct {
	Kind     models.Kind
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", strings.TrimSuffix(string(e.Kind), "s"), strings.Join(e.Problems, "; "))
}

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schemas
func New() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{ctx: ctx, schema: schema}, nil
}

// User checks a complete user record
func (v *Validator) User(u models.User) error {
	return v.check(models.KindUsers, "#User", u)
}

// Order checks a complete order record
func (v *Validator) Order(o models.Order) error {
	return v.check(models.KindOrders, "#Order", o)
}

// UserPatch checks a partial user update
func (v *Validator) UserPatch(p models.Patch) error {
	return v.checkPatch(models.KindUsers, "#UserPatch", p)
}

// OrderPatch checks a partial order update
func (v *Validator) OrderPatch(p models.Patch) error {
	return v.checkPatch(models.KindOrders, "#OrderPatch", p)
}

func (v *Validator) checkPatch(kind models.Kind, def string, p models.Patch) error {
	if len(p) == 0 {
		return &Error{Kind: kind, Problems: []string{"no fields to update"}}
	}
	fields := make(map[string]any, len(p))
	for k, raw := range p {
		var val any
		if err := json.Unmarshal(raw, &val); err != nil {
			return &Error{Kind: kind, Problems: []string{fmt.Sprintf("%s: %v", k, err)}}
		}
		fields[k] = val
	}
	return v.check(kind, def, fields)
}

func (v *Validator) check(kind models.Kind, def string, data any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.schema.LookupPath(cue.ParsePath(def)).Unify(v.ctx.Encode(data))
	err := val.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var problems []string
	seen := map[string]bool{}
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := strings.Join(e.Path(), "."); path != "" {
			msg = path + ": " + msg
		}
		if !seen[msg] {
			seen[msg] = true
			problems = append(problems, msg)
		}
	}
	return &Error{Kind: kind, Problems: problems}
}
