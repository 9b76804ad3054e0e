// Package eval counts material only. It is a baseline for comparing evaluators.
package eval

import (
	. "github.com/lazycounter/lazycounter/pkg/common"
)

type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var eval = 100*(PopCount(p.Pawns&p.White)-PopCount(p.Pawns&p.Black)) +
		325*(PopCount(p.Knights&p.White)-PopCount(p.Knights&p.Black)) +
		325*(PopCount(p.Bishops&p.White)-PopCount(p.Bishops&p.Black)) +
		550*(PopCount(p.Rooks&p.White)-PopCount(p.Rooks&p.Black)) +
		1000*(PopCount(p.Queens&p.White)-PopCount(p.Queens&p.Black))
	if !p.WhiteMove {
		eval = -eval
	}
	return eval
}
