package container_test

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/guillaumeVilar/ansible-cvp/internal/actions/mocks"
	"github.com/guillaumeVilar/ansible-cvp/pkg/container"
	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

var _ = ginkgo.Describe("AttachConfiglets", func() {
	var (
		ctx    context.Context
		client *mocks.MockCvpClient
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		client = mocks.CreateMockClient(&mocks.TestData{TaskIDs: []string{"57"}})
		client.TestData.SeedContainer("DC3", "", 0, 0)
		client.TestData.Configlets["ALIASES"] = &types.ConfigletInfo{
			Key:  "configlet_aliases",
			Name: "ALIASES",
		}
		client.TestData.Configlets["NTP"] = &types.ConfigletInfo{
			Key:  "configlet_ntp",
			Name: "NTP",
		}
	})

	ginkgo.When("every configlet resolves", func() {
		ginkgo.It("should attach the batch in a single call", func() {
			tools := container.NewTools(client, false, true)

			result := tools.AttachConfiglets(ctx, "DC3", []string{"ALIASES", "NTP"}, false)

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.Changed).To(gomega.BeTrue())
			gomega.Expect(result.Name).To(gomega.Equal("DC3:ALIASES:NTP"))
			gomega.Expect(result.Count).To(gomega.Equal(2))
			gomega.Expect(result.TaskIDs).To(gomega.ConsistOf("57"))
			gomega.Expect(result.Unresolved).To(gomega.BeEmpty())
			gomega.Expect(client.MutatingCalls).To(gomega.ConsistOf("ApplyConfiglets:DC3"))
		})
	})

	ginkgo.When("some configlets do not resolve", func() {
		ginkgo.It("should drop them from the batch and surface their names", func() {
			tools := container.NewTools(client, false, true)

			result := tools.AttachConfiglets(ctx, "DC3", []string{"ALIASES", "MISSING"}, false)

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.Name).To(gomega.Equal("DC3:ALIASES"))
			gomega.Expect(result.Unresolved).To(gomega.ConsistOf("MISSING"))
			gomega.Expect(result.Count).To(gomega.Equal(1))
		})
	})

	ginkgo.When("no configlet resolves", func() {
		ginkgo.It("should report success of an empty attach", func() {
			tools := container.NewTools(client, false, true)

			result := tools.AttachConfiglets(ctx, "DC3", []string{"MISSING"}, false)

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.Changed).To(gomega.BeFalse())
			gomega.Expect(result.Unresolved).To(gomega.ConsistOf("MISSING"))
			gomega.Expect(client.MutatingCalls).To(gomega.ConsistOf("ApplyConfiglets:DC3"))
		})
	})

	ginkgo.When("the container is missing", func() {
		ginkgo.It("should not attempt any call", func() {
			tools := container.NewTools(client, false, true)

			result := tools.AttachConfiglets(ctx, "GONE", []string{"ALIASES"}, false)

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("check mode is active", func() {
		ginkgo.It("should simulate the attach without any call", func() {
			tools := container.NewTools(client, true, true)

			result := tools.AttachConfiglets(ctx, "DC3", []string{"ALIASES"}, false)

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.TaskIDs).To(gomega.ConsistOf("check_mode"))
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("strict mode is requested", func() {
		ginkgo.It("should attach the batch without removing anything", func() {
			tools := container.NewTools(client, false, true)

			result := tools.AttachConfiglets(ctx, "DC3", []string{"ALIASES"}, true)

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(client.MutatingCalls).To(gomega.ConsistOf("ApplyConfiglets:DC3"))
		})
	})

	ginkgo.When("configlet resolution fails", func() {
		ginkgo.It("should absorb the failure into the result", func() {
			client.TestData.FailLookups = true
			tools := container.NewTools(client, false, true)

			result := tools.AttachConfiglets(ctx, "DC3", []string{"ALIASES"}, false)

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})
})

var _ = ginkgo.Describe("DetachConfiglets", func() {
	var (
		ctx    context.Context
		client *mocks.MockCvpClient
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		client = mocks.CreateMockClient(&mocks.TestData{})
		client.TestData.SeedContainer("DC3", "", 0, 0)
		client.TestData.Configlets["NTP"] = &types.ConfigletInfo{
			Key:  "configlet_ntp",
			Name: "NTP",
		}
	})

	ginkgo.It("should issue the remove call for resolved configlets", func() {
		tools := container.NewTools(client, false, false)

		result := tools.DetachConfiglets(ctx, "DC3", []string{"NTP"}, false)

		gomega.Expect(result.Success).To(gomega.BeTrue())
		gomega.Expect(result.Changed).To(gomega.BeTrue())
		gomega.Expect(client.MutatingCalls).To(gomega.ConsistOf("RemoveConfiglets:DC3"))
	})

	ginkgo.It("should simulate in check mode without any call", func() {
		tools := container.NewTools(client, true, false)

		result := tools.DetachConfiglets(ctx, "DC3", []string{"NTP"}, false)

		gomega.Expect(result.Success).To(gomega.BeTrue())
		gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
	})
})
