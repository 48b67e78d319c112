// Package scenario holds the built-in comparison suites.
package scenario

import (
	"fmt"
	"strings"

	"sensefp/internal/services"
)

// Item is one input of a suite.
type Item struct {
	Label   string
	Input   string
	Context string
}

// Scenario is a named set of inputs compared pairwise.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Items       []Item
}

var builtins = []Scenario{
	{
		ID:          "disambiguation",
		Title:       "1. Disambiguation Test (Bank)",
		Description: `Verify if the definitions of "Bank" (Financial vs River) produce distinct fingerprints.`,
		Items: []Item{
			{Label: "Bank (Financial)", Input: "存放或借贷货币的机构，从事存款、放款、汇兑、储蓄等业务。"},
			{Label: "Bank (River)", Input: "The land alongside or sloping down to a river or lake."},
		},
	},
	{
		ID:          "cross-lingual",
		Title:       "2. Cross-lingual Anchor Test (Spring)",
		Description: `Verify if Chinese, English, and French definitions of "Spring" converge to the same fingerprint.`,
		Items: []Item{
			{Label: "Spring (Chinese)", Input: "冬天到夏天之间的季节,天文学上是从三月的春分到六月的夏至。"},
			{Label: "Spring (English)", Input: "The season after winter and before summer, in which vegetation begins to appear."},
			{Label: "Spring (French)", Input: "Saison qui suit l'hiver et précède l'été."},
		},
	},
	{
		ID:          "abstract-logic",
		Title:       "3. Abstract Logic Test",
		Description: "Compare the physical definition of a spring with its functional mechanical description.",
		Items: []Item{
			{Label: "Spring (Physics)", Input: "一种利用弹性来工作的机械零件。用弹性材料制成的零件在外力作用下发生形变，除去外力后又恢复原状。"},
			{Label: "Spring (Mechanism)", Input: "A mechanical device made of coiled metal that recovers its shape after being compressed."},
		},
	},
}

// All returns copies of the built-in suites in display order.
func All() []Scenario {
	out := make([]Scenario, len(builtins))
	for i, s := range builtins {
		out[i] = s.clone()
	}
	return out
}

// IDs lists the built-in suite identifiers.
func IDs() []string {
	ids := make([]string, len(builtins))
	for i, s := range builtins {
		ids[i] = s.ID
	}
	return ids
}

// Lookup finds a suite by id, ignoring case and surrounding space.
func Lookup(id string) (Scenario, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, s := range builtins {
		if s.ID == key {
			return s.clone(), nil
		}
	}
	return Scenario{}, services.Wrap(
		services.ErrNotFound,
		"scenario",
		"lookup",
		fmt.Sprintf("unknown scenario %q (available: %s)", id, strings.Join(IDs(), ", ")),
		nil,
	)
}

func (s Scenario) clone() Scenario {
	s.Items = append([]Item(nil), s.Items...)
	return s
}
