package plugin

import (
	"fmt"

	"github.com/eurolinux-enterprise-linux-sources/foghorn/internal/types"
)

type chainEntry struct {
	iface  string
	filter types.Filter
}

// Chain is an ordered list of filters.
type Chain struct {
	entries []chainEntry
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends filter for iface. Adding the same pair twice is an error.
func (c *Chain) Add(iface string, filter types.Filter) error {
	if c.index(iface, filter) >= 0 {
		return fmt.Errorf("filter already installed for %s", iface)
	}
	c.entries = append(c.entries, chainEntry{iface: iface, filter: filter})
	return nil
}

// Remove deletes the entry added for iface and filter.
func (c *Chain) Remove(iface string, filter types.Filter) error {
	i := c.index(iface, filter)
	if i < 0 {
		return fmt.Errorf("no filter installed for %s", iface)
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return nil
}

// Dispatch runs msg through the filters in order until one handles it.
// Only filters registered for msg.Interface are consulted.
func (c *Chain) Dispatch(msg *types.Message) types.Result {
	for _, e := range c.entries {
		if e.iface != msg.Interface {
			continue
		}
		if e.filter.Filter(msg) == types.Handled {
			return types.Handled
		}
	}
	return types.NotHandled
}

// Len returns the number of installed filters.
func (c *Chain) Len() int {
	return len(c.entries)
}

// Interfaces returns the interface of every entry, in order.
func (c *Chain) Interfaces() []string {
	result := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		result = append(result, e.iface)
	}
	return result
}

func (c *Chain) index(iface string, filter types.Filter) int {
	for i, e := range c.entries {
		if e.iface == iface && e.filter == filter {
			return i
		}
	}
	return -1
}
