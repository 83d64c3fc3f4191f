package session_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/nickrallison/svql-go/netlist"
	"github.com/nickrallison/svql-go/search"
	"github.com/nickrallison/svql-go/session"
)

func andPattern() *netlist.Design {
	b := netlist.NewBuilder("and_pattern")
	a := b.AddInput("a", 1)
	c := b.AddInput("b", 1)
	and := b.AddAnd(netlist.Bits(a, 1), netlist.Bits(c, 1))
	b.AddOutput("y", netlist.Bits(and, 1))
	return b.Build()
}

func andHaystack() *netlist.Design {
	b := netlist.NewBuilder("haystack")
	a := b.AddInput("a", 1)
	bIn := b.AddInput("b", 1)
	cIn := b.AddInput("c", 1)
	and1 := b.AddAnd(netlist.Bits(a, 1), netlist.Bits(bIn, 1))
	or1 := b.AddOr(netlist.Bits(and1, 1), netlist.Bits(cIn, 1))
	b.AddOutput("y", netlist.Bits(or1, 1))
	return b.Build()
}

var _ = Describe("IndexCache", func() {
	It("builds an index once per design and reuses it", func() {
		cache := session.NewIndexCache()
		design := andHaystack()

		first := cache.Get(design)
		second := cache.Get(design)

		Expect(first).To(BeIdenticalTo(second))
		Expect(cache.Len()).To(Equal(1))
	})

	It("builds separate indices for distinct designs", func() {
		cache := session.NewIndexCache()
		cache.Get(andPattern())
		cache.Get(andHaystack())
		Expect(cache.Len()).To(Equal(2))
	})
})

var _ = Describe("Runner", func() {
	It("runs every task and reports matches, sharing one cache entry per design", func() {
		runner := session.NewRunnerWithScheduler(session.NewScheduler(session.PoolConfig{Workers: 2, MemCeilingFraction: 1}))

		needle := andPattern()
		haystack := andHaystack()
		tasks := []session.Task{
			{Label: "first", Needle: needle, Haystack: haystack, Config: search.DefaultConfig()},
			{Label: "second", Needle: needle, Haystack: haystack, Config: search.DefaultConfig()},
		}

		results := runner.Run(context.Background(), tasks)

		Expect(results).To(HaveLen(2))
		for _, res := range results {
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Matches).To(HaveLen(1))
			Expect(res.ID.String()).NotTo(BeEmpty())
		}
		Expect(results[0].ID).NotTo(Equal(results[1].ID))

		gotLabels := []string{results[0].Label, results[1].Label}
		wantLabels := []string{"first", "second"}
		if diff := cmp.Diff(wantLabels, gotLabels); diff != "" {
			Fail("result labels did not preserve task order (-want +got):\n" + diff)
		}
	})

	It("surfaces a scheduler acquisition error as the task result's error", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		mockSched := NewMockScheduler(mockCtrl)
		wantErr := errors.New("no capacity")
		mockSched.EXPECT().Acquire(gomock.Any()).Return(nil, wantErr).AnyTimes()

		runner := session.NewRunnerWithScheduler(mockSched)
		tasks := []session.Task{
			{Label: "only", Needle: andPattern(), Haystack: andHaystack(), Config: search.DefaultConfig()},
		}

		results := runner.Run(context.Background(), tasks)

		Expect(results).To(HaveLen(1))
		Expect(results[0].Err).To(MatchError(wantErr))
		Expect(results[0].Matches).To(BeEmpty())
	})
})
