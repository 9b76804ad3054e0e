package evalbuilder

import (
	"fmt"

	material "github.com/lazycounter/lazycounter/pkg/eval/material"
	pst "github.com/lazycounter/lazycounter/pkg/eval/pst"
)

var names = []string{"pst", "material"}

// Names lists the evaluators Get accepts.
func Names() []string {
	return names
}

// Get returns a factory for the named evaluator. The empty name selects
// the piece-square evaluator.
func Get(key string) (func() interface{}, error) {
	switch key {
	case "", "pst":
		return func() interface{} { return pst.NewEvaluationService() }, nil
	case "material":
		return func() interface{} { return material.NewEvaluationService() }, nil
	}
	return nil, fmt.Errorf("bad eval %v", key)
}
