package container_test

import (
	"context"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/guillaumeVilar/ansible-cvp/internal/actions/mocks"
	"github.com/guillaumeVilar/ansible-cvp/pkg/container"
)

var _ = ginkgo.Describe("CreateContainer", func() {
	var (
		ctx    context.Context
		client *mocks.MockCvpClient
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		client = mocks.CreateMockClient(&mocks.TestData{TaskIDs: []string{"42"}})
		client.TestData.SeedContainer("Tenant", "", 0, 0)
	})

	ginkgo.When("the parent exists and the container does not", func() {
		ginkgo.It("should create the container", func() {
			tools := container.NewTools(client, false, false)

			result := tools.CreateContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.Changed).To(gomega.BeTrue())
			gomega.Expect(result.TaskIDs).To(gomega.ConsistOf("42"))
			gomega.Expect(result.Count).To(gomega.Equal(1))
			gomega.Expect(client.MutatingCalls).To(gomega.ConsistOf("AddContainer:DC2"))
		})

		ginkgo.It("should be a no-op on the second run", func() {
			tools := container.NewTools(client, false, false)

			first := tools.CreateContainer(ctx, "DC2", "Tenant")
			second := tools.CreateContainer(ctx, "DC2", "Tenant")

			gomega.Expect(first.Changed).To(gomega.BeTrue())
			gomega.Expect(second.Success).To(gomega.BeFalse())
			gomega.Expect(second.Changed).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.HaveLen(1))
		})
	})

	ginkgo.When("the parent is missing", func() {
		ginkgo.It("should not attempt any call", func() {
			tools := container.NewTools(client, false, false)

			result := tools.CreateContainer(ctx, "DC2", "NOT_THERE")

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("check mode is active", func() {
		ginkgo.It("should report a simulated creation without any call", func() {
			tools := container.NewTools(client, true, false)

			result := tools.CreateContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.Changed).To(gomega.BeTrue())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the API rejects the creation", func() {
		ginkgo.It("should absorb the failure into the result", func() {
			client.TestData.FailMutations = true
			tools := container.NewTools(client, false, false)

			result := tools.CreateContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
		})

		ginkgo.It("should report failure on a non-success status", func() {
			client.TestData.RejectChanges = true
			tools := container.NewTools(client, false, false)

			result := tools.CreateContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
		})
	})

	ginkgo.When("lookups fail", func() {
		ginkgo.It("should not attempt any call", func() {
			client.TestData.FailLookups = true
			tools := container.NewTools(client, false, false)

			result := tools.CreateContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})
})

var _ = ginkgo.Describe("DeleteContainer", func() {
	var (
		ctx    context.Context
		client *mocks.MockCvpClient
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		client = mocks.CreateMockClient(&mocks.TestData{})
		client.TestData.SeedContainer("Tenant", "", 1, 0)
	})

	ginkgo.When("the container exists and is empty", func() {
		ginkgo.It("should delete it", func() {
			client.TestData.SeedContainer("DC2", "container_Tenant", 0, 0)
			tools := container.NewTools(client, false, false)

			result := tools.DeleteContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(result.Changed).To(gomega.BeTrue())
			gomega.Expect(client.MutatingCalls).To(gomega.ConsistOf("DeleteContainer:DC2"))
			gomega.Expect(tools.Exists(ctx, "DC2")).To(gomega.BeFalse())
		})
	})

	ginkgo.When("the container still holds a device", func() {
		ginkgo.It("should refuse to delete", func() {
			client.TestData.SeedContainer("DC2", "container_Tenant", 0, 1)
			tools := container.NewTools(client, false, false)

			result := tools.DeleteContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})

		ginkgo.It("should refuse even in check mode", func() {
			client.TestData.SeedContainer("DC2", "container_Tenant", 0, 1)
			tools := container.NewTools(client, true, false)

			result := tools.DeleteContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
		})
	})

	ginkgo.When("the container still holds a child container", func() {
		ginkgo.It("should refuse to delete", func() {
			client.TestData.SeedContainer("DC2", "container_Tenant", 1, 0)
			tools := container.NewTools(client, false, false)

			result := tools.DeleteContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the container is missing", func() {
		ginkgo.It("should be a no-op", func() {
			tools := container.NewTools(client, false, false)

			result := tools.DeleteContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeFalse())
			gomega.Expect(result.Changed).To(gomega.BeFalse())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("check mode is active on an eligible container", func() {
		ginkgo.It("should simulate the deletion without any call", func() {
			client.TestData.SeedContainer("DC2", "container_Tenant", 0, 0)
			tools := container.NewTools(client, true, false)

			result := tools.DeleteContainer(ctx, "DC2", "Tenant")

			gomega.Expect(result.Success).To(gomega.BeTrue())
			gomega.Expect(client.MutatingCalls).To(gomega.BeEmpty())
		})
	})
})
