package scoring

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/finhealth/pkg/constants"
)

// Item is one scored checklist row. Target, Percentage, Score and Gap are
// derived by Recompute; edit Current through Checklist.SetCurrent instead.
type Item struct {
	Kind       ItemKind `json:"item"`
	Policy     Policy   `json:"type"`
	Formula    string   `json:"formula"`
	Target     Value    `json:"target"`
	Current    Value    `json:"currentStatus"`
	Percentage float64  `json:"percentage"`
	Score      int      `json:"score"`
	Gap        *float64 `json:"gap"`
}

// Checklist is an immutable set of items keyed by kind. The zero value is an
// empty checklist; use NewChecklist for the seeded form.
type Checklist struct {
	items map[ItemKind]Item
}

// NewChecklist returns every item with empty current statuses and the
// seed targets of a blank assessment.
func NewChecklist() Checklist {
	items := make(map[ItemKind]Item, itemKindCount)
	for _, kind := range AllItemKinds() {
		item := Item{
			Kind:    kind,
			Policy:  kind.Policy(),
			Formula: kind.Formula(),
			Target:  Amount(0),
			Current: Amount(0),
			Score:   constants.MinItemScore,
		}
		switch kind.Policy() {
		case PolicyYesNo:
			item.Target = Answer(constants.YesAnswer)
			item.Current = Answer("")
		case PolicyInvestment:
			item.Target = Label(TargetLabel(0))
			item.Current = Mix(Allocation{})
		}
		switch kind {
		case MarriageFund:
			item.Target = Amount(constants.DefaultMarriageFundGoal)
		case CIBILScore:
			item.Target = Amount(constants.CIBILDisplayTarget)
		case TaxPlanning:
			item.Target = Amount(constants.TaxPlanningTarget)
		}
		items[kind] = item
	}
	return Checklist{items: items}
}

// Len returns the number of items.
func (c Checklist) Len() int {
	return len(c.items)
}

// Get returns the item for kind.
func (c Checklist) Get(kind ItemKind) (Item, bool) {
	item, ok := c.items[kind]
	return item, ok
}

// Items returns the items in display order.
func (c Checklist) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, kind := range AllItemKinds() {
		if item, ok := c.items[kind]; ok {
			out = append(out, item)
		}
	}
	return out
}

// SetCurrent returns a copy of the checklist with kind's current status
// replaced. The item is added if missing. Derived fields are left for
// Recompute to refresh.
func (c Checklist) SetCurrent(kind ItemKind, current Value) Checklist {
	if !kind.Valid() {
		return c
	}
	out := c.clone()
	item, ok := out.items[kind]
	if !ok {
		item = Item{Kind: kind, Policy: kind.Policy(), Formula: kind.Formula(), Score: constants.MinItemScore}
	}
	item.Current = current
	out.items[kind] = item
	return out
}

// MarshalJSON encodes the checklist as an array of items in display order.
func (c Checklist) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

// UnmarshalJSON decodes an array of items. Only the item name and current
// status are read; rows that are missing keep their seed values.
func (c *Checklist) UnmarshalJSON(data []byte) error {
	var rows []struct {
		Kind    *ItemKind `json:"item"`
		Current Value     `json:"currentStatus"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	out := NewChecklist()
	for i, row := range rows {
		if row.Kind == nil {
			return fmt.Errorf("checklist row %d has no item name", i)
		}
		item := out.items[*row.Kind]
		item.Current = row.Current
		out.items[*row.Kind] = item
	}
	*c = out
	return nil
}

func (c Checklist) clone() Checklist {
	items := make(map[ItemKind]Item, len(c.items)+1)
	for k, v := range c.items {
		items[k] = v
	}
	return Checklist{items: items}
}

func (c Checklist) set(item Item) {
	c.items[item.Kind] = item
}
