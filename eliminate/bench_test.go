package eliminate_test

import (
	"testing"

	"github.com/velatir/bayes/core"
	"github.com/velatir/bayes/eliminate"
	"github.com/velatir/bayes/symbolic"
)

// benchChain builds an n-variable chain graph and its natural ordering.
func benchChain(n int) (*core.FactorGraph, core.Ordering) {
	g := &core.FactorGraph{}
	ord := make(core.Ordering, 0, n)
	for i := 1; i < n; i++ {
		_ = g.Add(symbolic.NewFactor(core.Key(i), core.Key(i+1)))
	}
	for i := 1; i <= n; i++ {
		ord = append(ord, core.Key(i))
	}

	return g, ord
}

func BenchmarkRun_Chain100(b *testing.B) {
	g, ord := benchChain(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eliminate.Run(g, ord); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRun_Chain1000(b *testing.B) {
	g, ord := benchChain(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := eliminate.Run(g, ord); err != nil {
			b.Fatal(err)
		}
	}
}
