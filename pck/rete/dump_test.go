package rete

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphaMemories_EnumeratesEveryLeafMemory(t *testing.T) {
	net := NewReteNetwork()
	var fired []string
	record := func(name string, ok bool) {
		if ok {
			fired = append(fired, name)
		}
	}
	_, _, err := net.AddProduction(ageCheckProduction(record))
	require.NoError(t, err)

	net.AddWME("person1", "name", StringValue("Alice"))
	net.AddWME("person1", "age", IntValue(25))
	net.AddWME("legal", "min-age", IntValue(18))

	memories := net.AlphaMemories()
	require.Len(t, memories, 3)

	total := 0
	for _, m := range memories {
		total += len(m.Items())
	}
	require.Equal(t, 3, total)
}

func TestBetaMemories_EnumeratesRootAndEveryJoinChild(t *testing.T) {
	net := NewReteNetwork()
	_, _, err := net.AddProduction(ageCheckProduction(func(string, bool) {}))
	require.NoError(t, err)

	// Three conditions chain to beta_root plus three joins' beta
	// children: one memory per join, plus beta_root itself.
	memories := net.BetaMemories()
	require.Len(t, memories, 4)
}

func TestDumpState_CoversAllRequiredSurfaces(t *testing.T) {
	net := NewReteNetwork()
	_, _, err := net.AddProduction(ageCheckProduction(func(string, bool) {}))
	require.NoError(t, err)

	net.AddWME("person1", "name", StringValue("Alice"))
	net.AddWME("person1", "age", IntValue(25))
	net.AddWME("legal", "min-age", IntValue(18))

	var out bytes.Buffer
	net.DumpState(&out)
	dump := out.String()

	require.Contains(t, dump, "working memory")
	require.Contains(t, dump, "alpha memories")
	require.Contains(t, dump, "beta memories")
	require.Contains(t, dump, "productions")
	require.Contains(t, dump, "agenda")
	require.Contains(t, dump, "check-age")

	for _, m := range net.AlphaMemories() {
		require.Contains(t, dump, m.ID.String())
	}
	for _, b := range net.BetaMemories() {
		require.Contains(t, dump, b.ID.String())
	}
}
