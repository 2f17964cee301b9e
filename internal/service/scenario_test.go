package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/internal/estimation"
	"github.com/kubev2v/migration-scenario-planner/internal/events"
	"github.com/kubev2v/migration-scenario-planner/internal/service"
	"github.com/kubev2v/migration-scenario-planner/internal/service/mappers"
	"github.com/kubev2v/migration-scenario-planner/internal/store"
	"github.com/kubev2v/migration-scenario-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("scenario service", Ordered, func() {
	var (
		s         store.Store
		gormdb    *gorm.DB
		publisher *testPublisher
		srv       *service.ScenarioService
	)

	form := func(name string) mappers.ScenarioCreateForm {
		return mappers.ScenarioCreateForm{
			Name:               name,
			Criteria:           "all virtual machines",
			TargetName:         "aws-east",
			Strategy:           "rehost",
			ParallelMigrations: 2,
			VMs:                testVMs(),
		}
	}

	create := func(name string) *model.Scenario {
		scenario, err := srv.CreateScenario(context.TODO(), form(name))
		Expect(err).To(BeNil())
		return scenario
	}

	BeforeAll(func() {
		s, gormdb = newTestStore()
	})

	BeforeEach(func() {
		publisher = &testPublisher{}
		srv = service.NewScenarioService(s, service.NewEstimationEngine(nil), publisher)

		targets := service.NewTargetService(s)
		_, err := targets.CreateTarget(context.TODO(), awsTarget("aws-east"))
		Expect(err).To(BeNil())
		_, err = targets.CreateTarget(context.TODO(), estimation.NewTargetProfile("dc", estimation.PlatformOnPrem, estimation.WithBandwidth(10000, 0.9)))
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		cleanTables(gormdb)
	})

	Context("create", func() {
		It("stores an unevaluated scenario with a target snapshot", func() {
			scenario := create("lift")
			Expect(scenario.Outputs).To(BeNil())
			Expect(scenario.Strategy).To(Equal(string(estimation.StrategyRehost)))
			Expect(scenario.ToEstimation().Target.BandwidthMbps).To(Equal(1000.0))
			Expect(scenario.ToEstimation().VMs).To(HaveLen(3))
		})

		It("falls back to the target parallel migrations", func() {
			f := form("lift")
			f.ParallelMigrations = 0
			scenario, err := srv.CreateScenario(context.TODO(), f)
			Expect(err).To(BeNil())
			Expect(scenario.ParallelMigrations).To(Equal(estimation.DefaultMaxParallelMigrations))
		})

		It("fails on an unknown target", func() {
			f := form("lift")
			f.TargetName = "missing"
			_, err := srv.CreateScenario(context.TODO(), f)
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("rejects a duplicate name", func() {
			create("lift")
			_, err := srv.CreateScenario(context.TODO(), form("lift"))
			var dup *service.ErrDuplicateResource
			Expect(errors.As(err, &dup)).To(BeTrue())
		})

		DescribeTable("rejects invalid input",
			func(mutate func(f *mappers.ScenarioCreateForm)) {
				f := form("invalid")
				mutate(&f)
				_, err := srv.CreateScenario(context.TODO(), f)
				Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())

				var count int64
				Expect(gormdb.Model(&model.Scenario{}).Count(&count).Error).To(BeNil())
				Expect(count).To(BeZero())
			},
			Entry("unknown strategy", func(f *mappers.ScenarioCreateForm) { f.Strategy = "rewrite" }),
			Entry("negative parallel migrations", func(f *mappers.ScenarioCreateForm) { f.ParallelMigrations = -1 }),
			Entry("duplicate vm ids", func(f *mappers.ScenarioCreateForm) { f.VMs = append(f.VMs, estimation.VM{ID: "vm-1"}) }),
			Entry("repurchase on premises", func(f *mappers.ScenarioCreateForm) {
				f.TargetName = "dc"
				f.Strategy = "repurchase"
			}),
		)
	})

	Context("list", func() {
		It("filters by strategy and evaluation", func() {
			first := create("alpha")
			create("bravo")
			f := form("charlie")
			f.Strategy = "replatform"
			_, err := srv.CreateScenario(context.TODO(), f)
			Expect(err).To(BeNil())
			_, err = srv.Evaluate(context.TODO(), first.ID)
			Expect(err).To(BeNil())

			all, err := srv.ListScenarios(context.TODO(), mappers.ScenarioFilter{})
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(3))

			evaluated := true
			done, err := srv.ListScenarios(context.TODO(), mappers.ScenarioFilter{Evaluated: &evaluated})
			Expect(err).To(BeNil())
			Expect(done).To(HaveLen(1))
			Expect(done[0].Name).To(Equal("alpha"))

			limited, err := srv.ListScenarios(context.TODO(), mappers.ScenarioFilter{Strategy: "REHOST", Limit: 1, Offset: 1})
			Expect(err).To(BeNil())
			Expect(limited).To(HaveLen(1))
			Expect(limited[0].Name).To(Equal("bravo"))
		})
	})

	Context("evaluate", func() {
		It("stores the outputs and publishes an event", func() {
			scenario := create("lift")

			updated, err := srv.Evaluate(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())
			Expect(updated.Outputs).NotTo(BeNil())
			Expect(updated.EvaluatedAt).NotTo(BeNil())

			out := updated.Outputs.Data
			Expect(out.VMCount).To(Equal(3))
			Expect(out.Duration.TotalHours).To(BeNumerically(">", 0))
			Expect(out.Cost.ProjectedTotal).To(BeNumerically(">", 0))
			Expect(out.Recommendation.Score).To(And(BeNumerically(">=", 0), BeNumerically("<=", 100)))

			Expect(publisher.Kinds()).To(Equal([]string{events.ScenarioEvaluatedKind}))
			event, ok := publisher.Last().Payload.(events.ScenarioEvaluatedEvent)
			Expect(ok).To(BeTrue())
			Expect(event.ScenarioID).To(Equal(scenario.ID))
			Expect(event.Batch).To(BeFalse())
		})

		It("returns not found for a missing scenario", func() {
			_, err := srv.Evaluate(context.TODO(), uuid.New())
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
			Expect(publisher.Kinds()).To(BeEmpty())
		})

		It("evaluates a batch in one go", func() {
			first := create("alpha")
			f := form("bravo")
			f.Strategy = "refactor"
			second, err := srv.CreateScenario(context.TODO(), f)
			Expect(err).To(BeNil())

			updated, err := srv.EvaluateMany(context.TODO(), []uuid.UUID{first.ID, second.ID})
			Expect(err).To(BeNil())
			Expect(updated).To(HaveLen(2))
			for _, sc := range updated {
				Expect(sc.Outputs).NotTo(BeNil())
			}
			Expect(publisher.Kinds()).To(HaveLen(2))
			event := publisher.Last().Payload.(events.ScenarioEvaluatedEvent)
			Expect(event.Batch).To(BeTrue())
		})

		It("evaluates nothing when one scenario of the batch is missing", func() {
			first := create("alpha")

			_, err := srv.EvaluateMany(context.TODO(), []uuid.UUID{first.ID, uuid.New()})
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())

			stored, err := srv.GetScenario(context.TODO(), first.ID)
			Expect(err).To(BeNil())
			Expect(stored.Outputs).To(BeNil())
		})

		It("rejects a batch listing a scenario twice", func() {
			first := create("alpha")
			_, err := srv.EvaluateMany(context.TODO(), []uuid.UUID{first.ID, first.ID})
			Expect(estimation.IsInvalidConfiguration(err)).To(BeTrue())
		})
	})

	Context("waves", func() {
		It("requires an evaluated scenario", func() {
			scenario := create("lift")
			_, err := srv.GenerateWaves(context.TODO(), scenario.ID, mappers.WaveForm{WaveSize: 2})
			Expect(estimation.IsIncompleteScenario(err)).To(BeTrue())
		})

		It("generates and stores the waves", func() {
			scenario := create("lift")
			_, err := srv.Evaluate(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())

			generated, err := srv.GenerateWaves(context.TODO(), scenario.ID, mappers.WaveForm{WaveSize: 2})
			Expect(err).To(BeNil())
			Expect(generated).To(HaveLen(2))
			Expect(generated[0].VMIDs).To(Equal([]string{"vm-3", "vm-1"}))
			Expect(generated[1].VMIDs).To(Equal([]string{"vm-2"}))

			stored, err := srv.ListWaves(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())
			Expect(stored).To(Equal(generated))

			event := publisher.Last().Payload.(events.WavesGeneratedEvent)
			Expect(event.Waves).To(Equal(2))
			Expect(event.Ordering).To(Equal("SIZE_ASCENDING"))
		})

		It("uses the parallel migrations as the default wave size", func() {
			scenario := create("lift")
			_, err := srv.Evaluate(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())

			generated, err := srv.GenerateWaves(context.TODO(), scenario.ID, mappers.WaveForm{Ordering: "criticality_ascending"})
			Expect(err).To(BeNil())
			Expect(generated).To(HaveLen(2))
			Expect(generated[0].VMIDs).To(Equal([]string{"vm-1", "vm-3"}))
		})

		It("keeps the previous waves when the dependencies form a cycle", func() {
			scenario := create("lift")
			_, err := srv.Evaluate(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())
			_, err = srv.GenerateWaves(context.TODO(), scenario.ID, mappers.WaveForm{WaveSize: 1})
			Expect(err).To(BeNil())

			_, err = srv.GenerateWaves(context.TODO(), scenario.ID, mappers.WaveForm{
				WaveSize:     1,
				Dependencies: map[int][]int{1: {2}, 2: {1}},
			})
			Expect(estimation.IsInvalidDependencyGraph(err)).To(BeTrue())

			stored, err := srv.ListWaves(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())
			Expect(stored).To(HaveLen(3))
		})
	})

	Context("compare", func() {
		It("ranks evaluated scenarios", func() {
			first := create("alpha")
			second := create("bravo")
			_, err := srv.EvaluateMany(context.TODO(), []uuid.UUID{first.ID, second.ID})
			Expect(err).To(BeNil())

			rows, err := srv.Compare(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Score).To(BeNumerically(">=", rows[1].Score))
		})

		It("refuses unevaluated scenarios", func() {
			first := create("alpha")
			_, err := srv.Compare(context.TODO(), []uuid.UUID{first.ID})
			Expect(estimation.IsIncompleteScenario(err)).To(BeTrue())
		})
	})

	Context("delete", func() {
		It("removes the scenario and its waves", func() {
			scenario := create("lift")
			_, err := srv.Evaluate(context.TODO(), scenario.ID)
			Expect(err).To(BeNil())
			_, err = srv.GenerateWaves(context.TODO(), scenario.ID, mappers.WaveForm{WaveSize: 2})
			Expect(err).To(BeNil())

			Expect(srv.DeleteScenario(context.TODO(), scenario.ID)).To(Succeed())

			var count int64
			Expect(gormdb.Model(&model.Wave{}).Count(&count).Error).To(BeNil())
			Expect(count).To(BeZero())
			Expect(publisher.Last().Kind).To(Equal(events.ScenarioDeletedKind))

			_, err = srv.GetScenario(context.TODO(), scenario.ID)
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})
