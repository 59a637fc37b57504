// Package items implements item stacks and the inventories that hold them.
package items

import (
	"errors"
	"fmt"

	"github.com/Faultbox/highland/pkg/math"
)

// Kind identifies what an item is.
type Kind uint8

const (
	KindWood Kind = iota
	KindStone
	KindBerries
	KindRope
	KindCanvas
	KindTool
)

var kindNames = [...]string{
	KindWood:    "wood",
	KindStone:   "stone",
	KindBerries: "berries",
	KindRope:    "rope",
	KindCanvas:  "canvas",
	KindTool:    "tool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Inventory errors.
var (
	ErrInventoryFull = errors.New("inventory full")
	ErrNotEnough     = errors.New("not enough items")
	ErrBadQuantity   = errors.New("item quantity must be positive")
)

// Item is a stack of one kind. Position is only meaningful for items lying on the ground.
type Item struct {
	Kind     Kind
	Quantity int
	Position math.Vec3
}

// Inventory holds item stacks in insertion order, one stack per kind.
type Inventory struct {
	Capacity int // maximum number of stacks; 0 means unlimited
	stacks   []Item
}

// NewInventory creates an empty inventory with room for capacity stacks.
func NewInventory(capacity int) *Inventory {
	return &Inventory{Capacity: capacity}
}

// Add merges it into the stack of the same kind, or starts a new stack.
func (inv *Inventory) Add(it Item) error {
	if it.Quantity <= 0 {
		return ErrBadQuantity
	}
	for i := range inv.stacks {
		if inv.stacks[i].Kind == it.Kind {
			inv.stacks[i].Quantity += it.Quantity
			return nil
		}
	}
	if inv.Capacity > 0 && len(inv.stacks) >= inv.Capacity {
		return fmt.Errorf("%w: %d stacks", ErrInventoryFull, len(inv.stacks))
	}
	it.Position = math.Vec3{}
	inv.stacks = append(inv.stacks, it)
	return nil
}

// Remove takes quantity items of kind. Emptied stacks are dropped, keeping the order of the rest.
func (inv *Inventory) Remove(kind Kind, quantity int) error {
	if quantity <= 0 {
		return ErrBadQuantity
	}
	for i := range inv.stacks {
		if inv.stacks[i].Kind != kind {
			continue
		}
		if inv.stacks[i].Quantity < quantity {
			return fmt.Errorf("%w: have %d %s, want %d", ErrNotEnough, inv.stacks[i].Quantity, kind, quantity)
		}
		inv.stacks[i].Quantity -= quantity
		if inv.stacks[i].Quantity == 0 {
			inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("%w: have 0 %s, want %d", ErrNotEnough, kind, quantity)
}

// Count returns how many items of kind the inventory holds.
func (inv *Inventory) Count(kind Kind) int {
	for _, s := range inv.stacks {
		if s.Kind == kind {
			return s.Quantity
		}
	}
	return 0
}

// Items returns a copy of the stacks in insertion order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.stacks))
	copy(out, inv.stacks)
	return out
}

// Len returns the number of stacks.
func (inv *Inventory) Len() int {
	return len(inv.stacks)
}
