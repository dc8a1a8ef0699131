package game

import "golang.org/x/exp/rand"

// Zobrist holds one random key per (player, cell).
type Zobrist struct {
	keys [Players][Size][Size]uint64
}

// NewZobrist draws keys from r, so a seeded source gives reproducible hashes.
func NewZobrist(r *rand.Rand) *Zobrist {
	z := &Zobrist{}
	for p := range z.keys {
		for x := range z.keys[p] {
			for y := range z.keys[p][x] {
				z.keys[p][x][y] = r.Uint64()
			}
		}
	}
	return z
}

func (z *Zobrist) Key(p Player, a Action) uint64 {
	return z.keys[p][a.X][a.Y]
}

// Hash recomputes the hash of b from scratch
func (z *Zobrist) Hash(b *Board) uint64 {
	var hash uint64
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			switch b.grid[x][y] {
			case First:
				hash ^= z.keys[FirstPlayer][x][y]
			case Second:
				hash ^= z.keys[SecondPlayer][x][y]
			}
		}
	}
	return hash
}
