package rete

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ageCheckProduction builds a rule that checks whether a person's age
// clears the legal minimum:
//
//	(?p, name, ?n) (?p, age, ?a) (legal, min-age, ?m)
func ageCheckProduction(record func(name string, ok bool)) *Production {
	conditions := []Condition{
		NewCondition(Var("p"), Const(StringValue("name")), Var("n")),
		NewCondition(Var("p"), Const(StringValue("age")), Var("a")),
		NewCondition(Const(StringValue("legal")), Const(StringValue("min-age")), Var("m")),
	}
	action := func(b Bindings, _ any) error {
		age, _ := b["a"].AsInt()
		minAge, _ := b["m"].AsInt()
		name, _ := b["n"].AsString()
		record(name, age >= minAge)
		return nil
	}
	return NewProduction("check-age", conditions, action)
}

func TestScenario1_AgeCheck_Fires(t *testing.T) {
	net := NewReteNetwork()
	var recorded []string
	p := ageCheckProduction(func(name string, ok bool) {
		recorded = append(recorded, name)
		require.True(t, ok)
	})
	node, warnings, err := net.AddProduction(p)
	require.NoError(t, err)
	require.Empty(t, warnings)

	net.AddWME("person1", "name", StringValue("Alice"))
	net.AddWME("person1", "age", IntValue(25))
	net.AddWME("legal", "min-age", IntValue(18))

	require.Len(t, node.Items(), 1)
	require.NoError(t, node.Execute(node.Items()[0], nil))
	require.Equal(t, []string{"Alice"}, recorded)
}

func TestScenario2_NoMatch(t *testing.T) {
	net := NewReteNetwork()
	p := ageCheckProduction(func(string, bool) { t.Fatal("action must not run") })
	node, _, err := net.AddProduction(p)
	require.NoError(t, err)

	net.AddWME("person1", "name", StringValue("Alice"))

	require.Empty(t, node.Items())
}

// TestScenario3_Sharing verifies that two productions sharing their
// first two conditions share one chain of JoinNodes/BetaMemories.
func TestScenario3_Sharing(t *testing.T) {
	net := NewReteNetwork()

	shared := []Condition{
		NewCondition(Var("p"), Const(StringValue("name")), Var("n")),
		NewCondition(Var("p"), Const(StringValue("age")), Var("a")),
	}

	p1Conditions := append(append([]Condition{}, shared...),
		NewCondition(Const(StringValue("legal")), Const(StringValue("min-age")), Var("m")))
	p2Conditions := append(append([]Condition{}, shared...),
		NewCondition(Const(StringValue("legal")), Const(StringValue("max-age")), Var("x")))

	noop := func(Bindings, any) error { return nil }
	_, _, err := net.AddProduction(NewProduction("p1", p1Conditions, noop))
	require.NoError(t, err)
	_, _, err = net.AddProduction(NewProduction("p2", p2Conditions, noop))
	require.NoError(t, err)

	joinNodes := countJoinNodesUpToDepth(net.betaRoot, 2, 1)
	require.Equal(t, 2, joinNodes)
}

func countJoinNodesUpToDepth(b *BetaMemory, maxDepth, depth int) int {
	if depth > maxDepth {
		return 0
	}
	count := 0
	for _, child := range b.children {
		if j, ok := child.(*JoinNode); ok {
			count++
			count += countJoinNodesUpToDepth(j.betaChild, maxDepth, depth+1)
		}
	}
	return count
}

// TestScenario6_Retraction verifies that retracting a contributing WME
// empties the production's match set and the agenda, and re-asserting
// it reproduces the original single-firing behaviour.
func TestScenario6_Retraction(t *testing.T) {
	net := NewReteNetwork()
	p := ageCheckProduction(func(string, bool) {})
	node, _, err := net.AddProduction(p)
	require.NoError(t, err)

	net.AddWME("person1", "name", StringValue("Alice"))
	age := net.AddWME("person1", "age", IntValue(25))
	net.AddWME("legal", "min-age", IntValue(18))
	require.Len(t, node.Items(), 1)

	net.RemoveWME(age)
	require.Empty(t, node.Items())

	net.AddWME("person1", "age", IntValue(25))
	require.Len(t, node.Items(), 1)
}

func TestDuplicateAssertionIsNoOp(t *testing.T) {
	net := NewReteNetwork()
	w1 := net.AddWME("person1", "age", IntValue(25))
	w2 := net.AddWME("person1", "age", IntValue(25))
	require.Same(t, w1, w2)
	require.Len(t, net.WorkingMemory(), 1)
}

func TestAlphaMemorySharing(t *testing.T) {
	net := NewReteNetwork()
	c1 := NewCondition(Var("x"), Const(StringValue("status")), Const(StringValue("critical")))
	c2 := NewCondition(Var("y"), Const(StringValue("status")), Const(StringValue("critical")))

	m1 := net.buildOrShareAlphaMemory(c1)
	m2 := net.buildOrShareAlphaMemory(c2)
	require.Same(t, m1, m2)
}

func TestMalformedRuleWarning(t *testing.T) {
	net := NewReteNetwork()
	conditions := []Condition{
		NewCondition(Var("p"), Const(StringValue("name")), Var("unused")),
	}
	_, warnings, err := net.AddProduction(NewProduction("loose", conditions, func(Bindings, any) error { return nil }))
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
}
