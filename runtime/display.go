package runtime

import (
	"fmt"
	"sort"

	"github.com/disiqueira/gotree"
)

// DumpState renders the world state as a tree, for the REPL `state`
// command and for debugging.
func (sb *Sandbox) DumpState() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	addrs := make([]string, 0, len(sb.world))
	for addr := range sb.world {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	root := gotree.New("World")
	for _, addr := range addrs {
		state := sb.world[addr]
		node := root.Add(fmt.Sprintf("%s | nonce=%d balance=%d", addr[:8]+"...", state.Nonce, state.Balance))
		if !state.IsContract() {
			continue
		}
		node.Add(fmt.Sprintf("code | %s (%s)", sb.impls[addr].Name(), state.CodeHash[:8]+"..."))

		slots := map[string]interface{}{}
		err := state.StorageRoot.Iter(func(key string, value interface{}) error {
			slots[key] = value
			return nil
		})
		if err != nil {
			node.Add(fmt.Sprintf("storage | unreadable: %v", err))
			continue
		}
		keys := make([]string, 0, len(slots))
		for key := range slots {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		storageNode := node.Add("storage")
		for _, key := range keys {
			storageNode.Add(fmt.Sprintf("%s -> %v", key, slots[key]))
		}
	}
	return root.Print()
}
