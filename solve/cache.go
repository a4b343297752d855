package solve

import (
	"encoding/binary"
	"hash/fnv"
	"reflect"

	set "github.com/hashicorp/go-set/v3"

	"github.com/typedef-go/typedef/types"
)

// visitedPair identifies one (expected type, path) occurrence during
// a single Walk call. Caching these, the way the teacher's
// constraintSolver hash-conses constraintPair before recursing
// (frontend/types/constrain.go), lets Walk refuse to enter the same
// (type, path) occurrence twice. Each descent extends the path, so a
// user-built, self-referential Type graph never repeats a pair; it is
// stopped by visitGuard's depth bound instead.
type visitedPair struct {
	typ  *types.Type
	path string
}

// Hash satisfies set.Hasher[uint64] the same way constraintPair does
// in the teacher.
func (p visitedPair) Hash() uint64 {
	h := fnv.New64a()
	var ptrBuf [8]byte
	binary.LittleEndian.PutUint64(ptrBuf[:], uint64(reflect.ValueOf(p.typ).Pointer()))
	_, _ = h.Write(ptrBuf[:])
	_, _ = h.Write([]byte(p.path))
	return h.Sum64()
}

// visitGuard bounds recursion depth the way constrainSolver's
// fuel/depth counters do, and remembers visited (type, path) pairs so
// a cyclic Type graph fails loudly instead of overflowing the stack.
type visitGuard struct {
	seen  *set.HashSet[visitedPair, uint64]
	depth int
}

const maxWalkDepth = 250

func newVisitGuard() *visitGuard {
	return &visitGuard{seen: set.NewHashSet[visitedPair, uint64](0)}
}

// enter returns false if t/path has already been visited, or depth
// has exceeded the guard rail; call exit when done with this frame.
func (g *visitGuard) enter(t *types.Type, path types.PropPath) bool {
	g.depth++
	if g.depth > maxWalkDepth {
		return false
	}
	key := visitedPair{typ: t, path: SerializePath(path)}
	if g.seen.Contains(key) {
		return false
	}
	g.seen.Insert(key)
	return true
}

func (g *visitGuard) exit() {
	g.depth--
}
