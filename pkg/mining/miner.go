package mining

import "log/slog"

// DefaultMaxDepth is the default recursion bound for mining and validation.
// Real Bot API responses nest a few dozen levels at most; the bound exists to
// keep adversarial payloads from exhausting the stack.
const DefaultMaxDepth = 200

// Result maps each schema to the raw fragments that matched it, in document
// order. Every requested kind is present in the map, possibly with an empty
// list.
type Result map[Kind][]Object

// Total returns the number of fragments across all kinds.
func (r Result) Total() int {
	n := 0
	for _, fragments := range r {
		n += len(fragments)
	}
	return n
}

// Miner mines JSON values for entity fragments.
type Miner struct {
	maxDepth int
	logger   *slog.Logger
}

// NewMiner creates a miner with the given recursion bound. A non-positive
// maxDepth falls back to DefaultMaxDepth.
func NewMiner(maxDepth int) *Miner {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Miner{
		maxDepth: maxDepth,
		logger:   slog.Default().With("component", "mining"),
	}
}

// Mine walks v depth-first and collects every sub-object matching one of the
// requested schemas. Object nodes are tested against every schema
// independently (a node may match more than one), and traversal always
// descends into the children of a node regardless of whether it matched: a
// matched Message still contains a nested chat, sender and reply that must be
// mined too. The input is never mutated; collected fragments alias the input
// tree.
func (m *Miner) Mine(v Value, kinds ...Kind) Result {
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	found := make(Result, len(kinds))
	for _, k := range kinds {
		found[k] = []Object{}
	}

	m.mine(v, kinds, found, m.maxDepth)
	return found
}

// MineBytes decodes data and mines it. A non-JSON payload yields a nil Result
// and the decode error; mining is best-effort and callers are expected to
// treat that as "nothing found".
func (m *Miner) MineBytes(data []byte, kinds ...Kind) (Result, error) {
	v, err := DecodeDepth(data, m.maxDepth)
	if err != nil {
		return nil, err
	}
	return m.Mine(v, kinds...), nil
}

func (m *Miner) mine(v Value, kinds []Kind, found Result, depth int) {
	if depth <= 0 {
		m.logger.Debug("mining depth bound reached, skipping subtree",
			"max_depth", m.maxDepth,
		)
		return
	}

	switch t := v.(type) {
	case Object:
		for _, k := range kinds {
			if _, ok := validate(t, k, depth); ok {
				found[k] = append(found[k], t)
			}
		}
		for _, member := range t {
			m.mine(member.Value, kinds, found, depth-1)
		}
	case Array:
		// No match test at the array level, only at its elements.
		for _, item := range t {
			m.mine(item, kinds, found, depth-1)
		}
	}
	// Scalars terminate the recursion.
}
