package common

// Perft counts the leaf nodes of the legal move tree of the given depth.
// https://www.chessprogramming.org/Perft
func Perft(p *Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var result int64
	var buffer [MaxMoves]OrderedMove
	for _, om := range p.GenerateMoves(buffer[:]) {
		var undo, ok = p.TryMove(om.Move)
		if !ok {
			continue
		}
		if depth > 1 {
			result += Perft(p, depth-1)
		} else {
			result++
		}
		p.UnmakeMove(undo)
	}
	return result
}

type PerftEntry struct {
	Move  Move
	Nodes int64
}

// PerftDivide splits the perft count by root move, in generation order.
func PerftDivide(p *Position, depth int) []PerftEntry {
	var result []PerftEntry
	if depth <= 0 {
		return result
	}
	var buffer [MaxMoves]OrderedMove
	for _, om := range p.GenerateMoves(buffer[:]) {
		var undo, ok = p.TryMove(om.Move)
		if !ok {
			continue
		}
		result = append(result, PerftEntry{Move: om.Move, Nodes: Perft(p, depth-1)})
		p.UnmakeMove(undo)
	}
	return result
}
