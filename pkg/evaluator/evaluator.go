package evaluator

import (
	"fmt"

	"github.com/antonmedv/expr"
)

// Expression is an expr-lang expression evaluated against workflow data.
type Expression string

func (e Expression) Evaluate() (interface{}, error) {
	return e.EvaluateWithVars(map[string]interface{}{})
}

func (e Expression) EvaluateWithVars(params map[string]interface{}) (interface{}, error) {
	program, err := expr.Compile(string(e))
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", string(e), err)
	}

	result, err := expr.Run(program, params)
	if err != nil {
		return nil, fmt.Errorf("evaluating expression %q: %w", string(e), err)
	}

	return result, nil
}
