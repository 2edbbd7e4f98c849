package resolver

import (
	"fmt"
	"math/rand"

	"github.com/specialistvlad/stashgrid/internal/link"
)

func ids(s ...string) []link.RecordID {
	out := make([]link.RecordID, len(s))
	for i, v := range s {
		out[i] = link.RecordID(v)
	}
	return out
}

func single(from, to, id string) link.Single {
	return link.Single{From: link.RecordID(from), To: link.RecordID(to), ID: link.Identity(id)}
}

func group(from string, to []string, id string) link.Group {
	return link.Group{From: link.RecordID(from), To: ids(to...), ID: link.Identity(id)}
}

// numbered returns the records "0" .. "n-1".
func numbered(n int) []link.RecordID {
	out := make([]link.RecordID, n)
	for i := range out {
		out[i] = link.RecordID(fmt.Sprint(i))
	}
	return out
}

// randomBatch generates a batch with n records, roughly m single links and a
// few group links. Self-loops are included when selfLoops is set.
func randomBatch(rng *rand.Rand, n, m int, selfLoops bool) *link.Batch {
	b := &link.Batch{Records: numbered(n)}
	for i := 0; i < m; i++ {
		from, to := rng.Intn(n), rng.Intn(n)
		if from == to && !selfLoops {
			continue
		}
		b.Singles = append(b.Singles, link.Single{
			From: b.Records[from],
			To:   b.Records[to],
			ID:   link.Identity(fmt.Sprintf("s%d", i)),
		})
	}
	for i := 0; i < m/4; i++ {
		from := rng.Intn(n)
		g := link.Group{From: b.Records[from], ID: link.Identity(fmt.Sprintf("g%d", i))}
		for k := 0; k < 1+rng.Intn(4); k++ {
			to := rng.Intn(n)
			if to == from && !selfLoops {
				continue
			}
			g.To = append(g.To, b.Records[to])
		}
		if len(g.To) > 0 {
			b.Groups = append(b.Groups, g)
		}
	}
	return b
}

// acyclicBatch generates a batch whose links only point from higher to lower
// record numbers.
func acyclicBatch(rng *rand.Rand, n, m int) *link.Batch {
	b := &link.Batch{Records: numbered(n)}
	for i := 0; i < m; i++ {
		from, to := rng.Intn(n), rng.Intn(n)
		if from == to {
			continue
		}
		if from < to {
			from, to = to, from
		}
		b.Singles = append(b.Singles, link.Single{
			From: b.Records[from],
			To:   b.Records[to],
			ID:   link.Identity(fmt.Sprintf("s%d", i)),
		})
	}
	return b
}

type recorder struct {
	leaves [][]link.RecordID
	rounds []Round
}

func (r *recorder) OnLeaves(batch []link.RecordID) { r.leaves = append(r.leaves, batch) }
func (r *recorder) OnCut(round Round)              { r.rounds = append(r.rounds, round) }
