package split

import (
	"sort"

	"github.com/goodnight/goodnight/pkg/types"
)

// PersonSplit is what one person owes on a bill.
type PersonSplit struct {
	Person string
	Total  float64
	Items  []types.Item
}

// Summary holds the per-person breakdown of one bill, sorted by person.
type Summary struct {
	Title  string
	Total  float64
	People []PersonSplit
}

// Calculate groups the bill's items by the person they are attributed to.
// Each item is owed in full by its person.
func Calculate(bill types.Bill) Summary {
	byPerson := make(map[string]*PersonSplit)
	for _, item := range bill.Items {
		ps, ok := byPerson[item.Person]
		if !ok {
			ps = &PersonSplit{Person: item.Person}
			byPerson[item.Person] = ps
		}
		ps.Total += item.Price
		ps.Items = append(ps.Items, item)
	}

	people := make([]PersonSplit, 0, len(byPerson))
	for _, ps := range byPerson {
		people = append(people, *ps)
	}
	sort.Slice(people, func(i, j int) bool {
		return people[i].Person < people[j].Person
	})

	return Summary{
		Title:  bill.Title,
		Total:  bill.Total(),
		People: people,
	}
}
