package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Fuzz_RandomAllocFree_GuardInvariants performs a seeded random
// malloc/free/realloc/calloc workload against both strategies and validates
// the heap invariants plus live payload contents after every step.
func Test_Fuzz_RandomAllocFree_GuardInvariants(t *testing.T) {
	for _, v := range variants() {
		t.Run(v.name, func(t *testing.T) {
			a := v.make(t, 1<<22)

			rng := rand.New(rand.NewSource(42)) // fixed seed for reproducibility
			type live struct {
				seed byte
				size int32
			}
			allocs := make(map[Ptr]live)
			var order []Ptr

			for step := 0; step < 500; step++ {
				switch op := rng.Intn(10); {
				case op < 5: // allocate
					size := int32(rng.Intn(768))
					p, payload, err := a.Malloc(size)
					require.NoError(t, err, "step %d: Malloc(%d)", step, size)
					seed := byte(rng.Intn(256))
					fillPattern(payload[:size], seed)
					allocs[p] = live{seed: seed, size: size}
					order = append(order, p)

				case op < 8: // free a random live allocation
					if len(order) == 0 {
						continue
					}
					i := rng.Intn(len(order))
					p := order[i]
					order = append(order[:i], order[i+1:]...)
					require.NoError(t, a.Free(p), "step %d: Free(%d)", step, p)
					delete(allocs, p)

				case op < 9: // realloc a random live allocation
					if len(order) == 0 {
						continue
					}
					i := rng.Intn(len(order))
					p := order[i]
					old := allocs[p]
					size := int32(rng.Intn(768))
					np, payload, err := a.Realloc(p, size)
					require.NoError(t, err, "step %d: Realloc(%d, %d)", step, p, size)
					delete(allocs, p)
					if size == 0 {
						require.Equal(t, NullPtr, np)
						order = append(order[:i], order[i+1:]...)
						continue
					}
					keep := old.size
					if size < keep {
						keep = size
					}
					requirePattern(t, payload, old.seed, int(keep))
					fillPattern(payload[:size], old.seed)
					allocs[np] = live{seed: old.seed, size: size}
					order[i] = np

				default: // calloc
					count := int32(rng.Intn(16))
					size := int32(rng.Intn(32))
					p, payload, err := a.Calloc(count, size)
					require.NoError(t, err, "step %d: Calloc(%d, %d)", step, count, size)
					total := count * size
					for i := int32(0); i < total; i++ {
						require.Zero(t, payload[i], "step %d: calloc byte %d not zero", step, i)
					}
					seed := byte(rng.Intn(256))
					fillPattern(payload[:total], seed)
					allocs[p] = live{seed: seed, size: total}
					order = append(order, p)
				}

				require.NoError(t, a.Check(), "step %d: invariant check failed", step)
			}

			// Every surviving payload must still carry its pattern.
			for p, l := range allocs {
				payload, err := a.Payload(p)
				require.NoError(t, err)
				requirePattern(t, payload, l.seed, int(l.size))
			}

			// Releasing everything must leave the walk clean.
			for _, p := range order {
				require.NoError(t, a.Free(p))
			}
			require.NoError(t, a.Check())
		})
	}
}
