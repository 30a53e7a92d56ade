package databank

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Fingerprint returns a stable hash of the databank content. Two loads of
// the same data produce the same fingerprint regardless of map iteration
// order, so it can key caches of derived artifacts.
func (b *Databank) Fingerprint() string {
	h := sha256.New()

	ids := make([]int, 0, len(b.Objects))
	for id := range b.Objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		o := b.Objects[id]
		fmt.Fprintf(h, "o|%d|%s|%t|%t|%v\n", o.ID, o.Name, o.Natural, o.Category, o.Members)
	}
	for _, t := range b.Transitions {
		fmt.Fprintf(h, "t|%d|%d|%d|%d|%d|%t|%t\n",
			t.Actor, t.Target, t.NewActor, t.NewTarget,
			t.AutoDecaySeconds, t.LastUseActor, t.LastUseTarget)
	}
	return hex.EncodeToString(h.Sum(nil))
}
