package actions_test

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/guillaumeVilar/ansible-cvp/internal/actions"
	"github.com/guillaumeVilar/ansible-cvp/internal/actions/mocks"
	"github.com/guillaumeVilar/ansible-cvp/pkg/container"
	"github.com/guillaumeVilar/ansible-cvp/pkg/topology"
	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

var _ = ginkgo.Describe("BuildTopology", func() {
	var (
		ctx    context.Context
		client *mocks.MockCvpClient
		params actions.Params
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		client = mocks.CreateMockClient(&mocks.TestData{})
		client.TestData.SeedContainer("Tenant", "", 0, 0)
		client.TestData.Configlets["ALIASES"] = &types.ConfigletInfo{
			Key:  "configlet_aliases",
			Name: "ALIASES",
		}
		params = actions.Params{Root: topology.DefaultRoot}
	})

	ginkgo.When("building a fresh two-level topology", func() {
		topo := topology.Topology{
			"DC2": {ParentContainer: "Tenant"},
			"DC2_LEAFS": {
				ParentContainer: "DC2",
				Configlets:      []string{"ALIASES"},
			},
		}

		ginkgo.It("should create parents before children and attach configlets", func() {
			tools := container.NewTools(client, false, false)

			report, err := actions.BuildTopology(ctx, tools, topo, params)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Created()).To(gomega.HaveLen(2))
			gomega.Expect(report.Attached()).To(gomega.HaveLen(1))
			gomega.Expect(report.Failed()).To(gomega.BeEmpty())
			gomega.Expect(report.Changed()).To(gomega.BeTrue())
			gomega.Expect(client.MutatingCalls).To(gomega.Equal([]string{
				"AddContainer:DC2",
				"AddContainer:DC2_LEAFS",
				"ApplyConfiglets:DC2_LEAFS",
			}))
		})

		ginkgo.It("should record existing containers as no-ops on the second run", func() {
			tools := container.NewTools(client, false, false)

			_, err := actions.BuildTopology(ctx, tools, topo, params)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			client.MutatingCalls = nil

			report, err := actions.BuildTopology(ctx, tools, topo, params)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Created()).To(gomega.BeEmpty())
			gomega.Expect(report.Failed()).To(gomega.BeEmpty())
			gomega.Expect(report.NoOp()).To(gomega.HaveLen(2))
			// Configlet attachment is re-applied on every run.
			gomega.Expect(client.MutatingCalls).To(gomega.Equal([]string{
				"ApplyConfiglets:DC2_LEAFS",
			}))
		})
	})

	ginkgo.When("the topology has a dangling parent", func() {
		ginkgo.It("should fail hard without touching CloudVision", func() {
			topo := topology.Topology{
				"ORPHAN": {ParentContainer: "NOWHERE"},
			}
			tools := container.NewTools(client, false, false)

			_, err := actions.BuildTopology(ctx, tools, topo, params)

			gomega.Expect(err).To(gomega.MatchError(topology.ErrDanglingParent))
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("check mode is active", func() {
		ginkgo.It("should simulate creations without issuing any call", func() {
			client.TestData.SeedContainer("DC1", "container_Tenant", 0, 0)
			topo := topology.Topology{
				"DC1": {ParentContainer: "Tenant"},
				"DC2": {ParentContainer: "Tenant"},
			}
			tools := container.NewTools(client, true, false)

			report, err := actions.BuildTopology(ctx, tools, topo, params)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Created()).To(gomega.HaveLen(1))
			gomega.Expect(report.NoOp()).To(gomega.HaveLen(1))
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("a creation fails", func() {
		ginkgo.It("should record the failure and keep going", func() {
			client.TestData.FailMutations = true
			topo := topology.Topology{
				"DC1": {ParentContainer: "Tenant"},
				"DC2": {ParentContainer: "Tenant"},
			}
			tools := container.NewTools(client, false, false)

			report, err := actions.BuildTopology(ctx, tools, topo, params)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report.Failed()).To(gomega.HaveLen(2))
			gomega.Expect(report.Changed()).To(gomega.BeFalse())
		})
	})
})
