package strategy

import (
	"testing"

	"github.com/jtomasevic/rete-synapse/pck/rete"
	"github.com/stretchr/testify/require"
)

// TestLEXStrategy_PrefersMostRecentContribution builds two depth-2
// tokens where Default ties (insertion order wins) but LEX distinguishes
// by recency of contributing WMEs.
func TestLEXStrategy_PrefersMostRecentContribution(t *testing.T) {
	net := rete.NewReteNetwork()

	conds := func(entity string) []rete.Condition {
		return []rete.Condition{
			rete.NewCondition(rete.Const(rete.StringValue(entity)), rete.Const(rete.StringValue("status")), rete.Const(rete.StringValue("active"))),
			rete.NewCondition(rete.Const(rete.StringValue(entity)), rete.Const(rete.StringValue("role")), rete.Const(rete.StringValue("admin"))),
		}
	}
	olderNode, _, err := net.AddProduction(rete.NewProduction("older", conds("alice"), noopAction))
	require.NoError(t, err)
	newerNode, _, err := net.AddProduction(rete.NewProduction("newer", conds("bob"), noopAction))
	require.NoError(t, err)

	// older's WMEs asserted first (lower timestamps)...
	net.AddWME("alice", "status", rete.StringValue("active"))
	net.AddWME("alice", "role", rete.StringValue("admin"))
	// ...then newer's WMEs (higher timestamps).
	net.AddWME("bob", "status", rete.StringValue("active"))
	net.AddWME("bob", "role", rete.StringValue("admin"))

	require.Len(t, olderNode.Items(), 1)
	require.Len(t, newerNode.Items(), 1)

	agenda := []AgendaEntry{
		{Production: olderNode, Token: olderNode.Items()[0]},
		{Production: newerNode, Token: newerNode.Items()[0]},
	}

	// Default ties on depth and keeps the first entry (older).
	require.Equal(t, "older", NewDefaultStrategy().Select(agenda).Production.Production.Name)
	// LEX prefers the entry contributed by the more recently asserted WMEs.
	require.Equal(t, "newer", NewLEXStrategy().Select(agenda).Production.Production.Name)
}

func TestLexCompare(t *testing.T) {
	require.Greater(t, lexCompare([]int{10, 1}, []int{9, 9}), 0)
	require.Less(t, lexCompare([]int{5, 9}, []int{5, 10}), 0)
	require.Equal(t, 0, lexCompare([]int{3, 2}, []int{3, 2}))
}
