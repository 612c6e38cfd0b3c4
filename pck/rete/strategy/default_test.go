package strategy

import (
	"testing"

	"github.com/jtomasevic/rete-synapse/pck/rete"
	"github.com/stretchr/testify/require"
)

func noopAction(rete.Bindings, any) error { return nil }

// TestDefaultStrategy_PicksDeepest verifies that the agenda entry whose
// token has the greatest depth wins, regardless of recency.
func TestDefaultStrategy_PicksDeepest(t *testing.T) {
	net := rete.NewReteNetwork()

	shallow := rete.NewProduction("shallow", []rete.Condition{
		rete.NewCondition(rete.Var("x"), rete.Const(rete.StringValue("status")), rete.Const(rete.StringValue("active"))),
	}, noopAction)
	deep := rete.NewProduction("deep", []rete.Condition{
		rete.NewCondition(rete.Var("x"), rete.Const(rete.StringValue("status")), rete.Const(rete.StringValue("active"))),
		rete.NewCondition(rete.Var("x"), rete.Const(rete.StringValue("role")), rete.Const(rete.StringValue("admin"))),
	}, noopAction)

	shallowNode, _, err := net.AddProduction(shallow)
	require.NoError(t, err)
	deepNode, _, err := net.AddProduction(deep)
	require.NoError(t, err)

	net.AddWME("bob", "status", rete.StringValue("active"))
	net.AddWME("bob", "role", rete.StringValue("admin"))

	require.Len(t, shallowNode.Items(), 1)
	require.Len(t, deepNode.Items(), 1)

	agenda := []AgendaEntry{
		{Production: shallowNode, Token: shallowNode.Items()[0]},
		{Production: deepNode, Token: deepNode.Items()[0]},
	}

	picked := NewDefaultStrategy().Select(agenda)
	require.Equal(t, "deep", picked.Production.Production.Name)
}

// TestDefaultStrategy_TiesBreakByInsertionOrder verifies that equal-depth
// entries resolve to whichever appeared first in the agenda slice.
func TestDefaultStrategy_TiesBreakByInsertionOrder(t *testing.T) {
	net := rete.NewReteNetwork()
	p1Node, _, err := net.AddProduction(rete.NewProduction("p1", []rete.Condition{
		rete.NewCondition(rete.Var("x"), rete.Const(rete.StringValue("status")), rete.Const(rete.StringValue("active"))),
	}, noopAction))
	require.NoError(t, err)
	p2Node, _, err := net.AddProduction(rete.NewProduction("p2", []rete.Condition{
		rete.NewCondition(rete.Var("x"), rete.Const(rete.StringValue("status")), rete.Const(rete.StringValue("active"))),
	}, noopAction))
	require.NoError(t, err)

	net.AddWME("bob", "status", rete.StringValue("active"))

	agenda := []AgendaEntry{
		{Production: p1Node, Token: p1Node.Items()[0]},
		{Production: p2Node, Token: p2Node.Items()[0]},
	}
	require.Equal(t, "p1", NewDefaultStrategy().Select(agenda).Production.Production.Name)
}
