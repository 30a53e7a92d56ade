package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/craftviz/craftviz/pkg/databank"
	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph"
)

// inspectCommand creates the inspect command for examining a databank.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <databank> [object-id]",
		Short: "Show databank statistics or the details of one object",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, g, err := c.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				printBankSummary(bank, g)
				return nil
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "object id must be a number, got %q", args[1])
			}
			return printObject(bank, g, id)
		},
	}
}

// printBankSummary prints aggregate statistics of the databank and graph.
func printBankSummary(bank *databank.Databank, g *graph.Graph) {
	var natural, categories int
	for _, o := range bank.Objects {
		if o.ID <= 0 {
			continue
		}
		if o.Natural {
			natural++
		}
		if o.Category {
			categories++
		}
	}

	var looping int
	for i := 0; i < g.EdgeCount(); i++ {
		if g.Edge(i).Looping {
			looping++
		}
	}
	components := make(map[int]bool)
	for i := 0; i < g.NodeCount(); i++ {
		components[g.ComponentOf(i)] = true
	}

	fmt.Println(StyleTitle.Render("Databank"))
	printKeyValue("objects", fmt.Sprintf("%d (%d natural, %d categories)",
		len(bank.Objects)-1, natural, categories))
	printKeyValue("transitions", fmt.Sprintf("%d", len(bank.Transitions)))
	printKeyValue("graph", fmt.Sprintf("%d nodes, %d edges", g.NodeCount(), g.EdgeCount()))
	printKeyValue("components", fmt.Sprintf("%d", len(components)))
	printKeyValue("looping edges", fmt.Sprintf("%d", looping))
	if unreached := g.Unreached(); len(unreached) > 0 {
		printWarning("%d objects cannot be obtained from natural objects", len(unreached))
	}
}

// printObject prints one object with its complexity, recipes and uses.
func printObject(bank *databank.Databank, g *graph.Graph, id int) error {
	obj, ok := bank.Objects[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownObject, "no object with id %d", id)
	}

	fmt.Println(StyleTitle.Render(obj.Name))
	printKeyValue("id", strconv.Itoa(obj.ID))
	kind := "crafted"
	switch {
	case obj.Category:
		kind = "category"
	case obj.Natural:
		kind = "natural"
	}
	printKeyValue("kind", kind)

	node, ok := g.NodeForObject(id)
	if !ok {
		// Bare hands has no node; nothing graph-side to show.
		return nil
	}
	n := g.Node(node)
	if v, reached := n.Complexity.Value(); reached {
		printKeyValue("complexity", strconv.Itoa(v))
	} else {
		printWarning("not obtainable from natural objects")
	}

	if obj.Category {
		names := make([]string, 0, len(obj.Members))
		for _, m := range obj.Members {
			names = append(names, memberName(bank, m))
		}
		sort.Strings(names)
		printKeyValue("members", strings.Join(names, ", "))
	}

	printRecipes(bank, g, node)
	printUses(g, node)
	return nil
}

// printRecipes lists the transitions producing the object.
func printRecipes(bank *databank.Databank, g *graph.Graph, node int) {
	var lines []string
	for _, eid := range g.Incoming(node) {
		e := g.Edge(eid)
		join := g.Node(e.From)
		if !join.IsTransition() {
			continue
		}
		t := join.Transition
		inputs := make([]string, 0, 2)
		for _, in := range t.Inputs() {
			inputs = append(inputs, memberName(bank, in))
		}
		line := strings.Join(inputs, " + ")
		if t.Kind == databank.KindNatural {
			line += " " + StyleDim.Render("(decay "+graph.FormatDuration(t.AutoDecaySeconds)+")")
		} else {
			line += " " + StyleDim.Render("("+t.Kind.String()+")")
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}

	printInfo("Recipes")
	for _, l := range lines {
		printDetail("%s", l)
	}
}

// printUses counts where the object appears as a recipe input.
func printUses(g *graph.Graph, node int) {
	var uses, categories int
	for _, eid := range g.Outgoing(node) {
		if g.Edge(eid).Kind == graph.EdgeCategory {
			categories++
		} else {
			uses++
		}
	}
	if uses > 0 {
		printDetail("used in %d recipes", uses)
	}
	if categories > 0 {
		printDetail("member of %d categories", categories)
	}
}

func memberName(bank *databank.Databank, id int) string {
	if o, ok := bank.Objects[id]; ok {
		return o.Name
	}
	return fmt.Sprintf("object %d", id)
}
